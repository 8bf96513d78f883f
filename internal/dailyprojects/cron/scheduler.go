package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/service"
)

// Scheduler pre-generates the day's default batch at midnight so the first
// caller of the day hits cache instead of waiting on the AI provider.
type Scheduler struct {
	projects *service.ProjectService
	count    int
	cron     *cron.Cron
}

func NewScheduler(projects *service.ProjectService, count int) *Scheduler {
	if count < 1 || count > domain.MaxProjectCount {
		count = 5
	}
	return &Scheduler{projects: projects, count: count}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.prewarm()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (pre-generating daily projects at 12:00AM)")
	c.Start()
	s.cron = c
}

// Stop halts the scheduler. Running jobs finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) prewarm() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	today := time.Now().Format(domain.DateLayout)
	batch, err := s.projects.GetDaily(ctx, today, s.count, false)
	if err != nil {
		log.Printf("Pre-generation failed for %s: %v", today, err)
		return
	}
	log.Printf("Pre-generated %d projects for %s (source=%s)", len(batch.Projects), today, batch.Source)
}
