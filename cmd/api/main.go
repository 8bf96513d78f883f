package main

import (
	"log"

	"github.com/devprojects-hub/daily-projects-backend/config"
	"github.com/devprojects-hub/daily-projects-backend/internal/bootstrap"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/ai"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/cache"
	cronjob "github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/cron"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/fallback"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/ratelimit"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	redisClient, err := bootstrap.ConnectRedis(cfg.Redis.URL)
	if err != nil {
		if redisClient == nil {
			log.Fatalf("invalid redis configuration: %v", err)
		}
		// The engine degrades to uncached fallback-capable operation; do not exit.
		log.Printf("redis connection failed, running degraded: %v", err)
	}
	defer redisClient.Close()

	store := cache.NewStore(redisClient)

	generator := ai.NewClient(ai.Config{
		BaseURL:           cfg.AI.APIURL,
		APIKey:            cfg.AI.APIKey,
		Model:             cfg.AI.Model,
		MaxTokens:         cfg.AI.MaxTokens,
		Temperature:       cfg.AI.Temperature,
		Timeout:           cfg.AI.Timeout,
		MaxCallsPerMinute: cfg.AI.MaxCallsPerMinute,
	})

	projects := service.NewProjectService(store, generator, fallback.NewProvider(), service.Config{
		DailyTTL:         cfg.Cache.DailyTTL,
		FallbackTTL:      cfg.Cache.FallbackTTL,
		LockTTL:          cfg.Cache.LockTTL,
		LockPollInterval: cfg.Cache.LockPollInterval,
		LockPollAttempts: cfg.Cache.LockPollAttempts,
	})

	limiter := ratelimit.NewLimiter(store, cfg.RateLimit.Max, cfg.RateLimit.Window)

	if cfg.Prewarm.Enabled {
		scheduler := cronjob.NewScheduler(projects, cfg.Prewarm.Count)
		scheduler.Start()
		defer scheduler.Stop()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "daily-projects-backend",
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Projects:    projects,
		Limiter:     limiter,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
