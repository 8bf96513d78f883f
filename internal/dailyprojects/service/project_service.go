// Package service holds the project orchestrator: cache hit/miss decisions,
// single-flight generation per (date, count) key, fallback on AI failure and
// the stats/invalidation operations.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/cache"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"
)

// Cache key namespaces. Lock and rate keys derive from these in their owners.
const (
	dailyKeyPrefix = "daily:"
	lockKeyPrefix  = "lock:"

	statsTotalGenerated  = "stats:total_generated"
	statsAISourced       = "stats:ai_sourced"
	statsFallbackSourced = "stats:fallback_sourced"
	statsCacheHits       = "stats:cache_hits"
	statsCacheMisses     = "stats:cache_misses"
)

const maxArchiveDays = 30

// Generator is the AI generation capability consumed by the orchestrator.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Project, error)
}

// FallbackProvider supplies deterministic template projects.
type FallbackProvider interface {
	Sample(date string, count int, difficulties []domain.DifficultyLevel, category string) ([]domain.Project, bool)
}

// Config bounds every wait the orchestrator performs.
type Config struct {
	DailyTTL         time.Duration // cache TTL for AI-sourced batches
	FallbackTTL      time.Duration // shorter TTL so AI is retried sooner
	LockTTL          time.Duration // generation lock lifetime
	LockPollInterval time.Duration // sleep between lock-waiter polls
	LockPollAttempts int           // capped waiter attempts before falling through
}

// ProjectService is the engine facade.
type ProjectService struct {
	store     *cache.Store
	generator Generator
	fallback  FallbackProvider
	cfg       Config
	now       func() time.Time
}

func NewProjectService(store *cache.Store, generator Generator, fallback FallbackProvider, cfg Config) *ProjectService {
	return &ProjectService{
		store:     store,
		generator: generator,
		fallback:  fallback,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Stats is a snapshot of the engine counters.
type Stats struct {
	TotalGenerated  int64   `json:"total_generated"`
	AISourced       int64   `json:"ai_sourced"`
	FallbackSourced int64   `json:"fallback_sourced"`
	CacheHits       int64   `json:"cache_hits"`
	CacheMisses     int64   `json:"cache_misses"`
	CacheHitRatio   float64 `json:"cache_hit_ratio"`
}

// ArchiveEntry summarizes one previous day's cached batch.
type ArchiveEntry struct {
	Date     string           `json:"date"`
	Projects []domain.Project `json:"projects"`
	Total    int              `json:"total"`
}

// GetDaily returns the batch for (date, count), generating it on a cold
// cache. An empty date means today. force regenerates even on a hit but
// still goes through the generation lock, so concurrent forced requests
// cannot stack AI calls.
func (s *ProjectService) GetDaily(ctx context.Context, date string, count int, force bool) (*domain.DailyBatch, error) {
	logger := NewLogger(ctx)

	if date == "" {
		date = s.now().Format(domain.DateLayout)
	}
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}
	req := domain.GenerationRequest{Count: count, ForceRegenerate: force}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := dailyKey(date, count)

	if !force {
		batch, err := s.readBatch(ctx, key)
		switch {
		case err == nil:
			s.bump(ctx, statsCacheHits, 1)
			return batch, nil
		case errors.Is(err, cache.ErrCacheUnavailable):
			// Cache down: serve a freshly built batch without publishing it.
			logger.LogWarnf("get_daily", "cache unreachable, generating without cache: %v", err)
			batch := s.buildBatch(ctx, date, count)
			return batch, nil
		}
		s.bump(ctx, statsCacheMisses, 1)
	}

	return s.generateUnderLock(ctx, date, count, key)
}

// generateUnderLock guarantees at most one concurrent generation per key.
// Callers that lose the lock poll for the holder's result and fall through to
// their own attempt only after the grace period.
func (s *ProjectService) generateUnderLock(ctx context.Context, date string, count int, key string) (*domain.DailyBatch, error) {
	logger := NewLogger(ctx)
	lockKey := lockKeyPrefix + key

	acquired, err := s.store.SetNX(ctx, lockKey, "locked", s.cfg.LockTTL)
	if err != nil {
		logger.LogWarnf("generate", "lock unavailable, generating without cache: %v", err)
		return s.buildBatch(ctx, date, count), nil
	}

	if !acquired {
		if batch := s.waitForHolder(ctx, key); batch != nil {
			return batch, nil
		}
		logger.LogWarnf("generate", "lock holder did not publish for %s, proceeding", key)
		// One more shot at the lock now that its TTL should have elapsed.
		acquired, err = s.store.SetNX(ctx, lockKey, "locked", s.cfg.LockTTL)
		if err != nil {
			return s.buildBatch(ctx, date, count), nil
		}
	}

	if acquired {
		defer func() {
			if _, err := s.store.Delete(context.WithoutCancel(ctx), lockKey); err != nil {
				logger.LogWarnf("generate", "failed to release lock %s: %v", lockKey, err)
			}
		}()
	}

	batch := s.buildBatch(ctx, date, count)

	ttl := s.cfg.DailyTTL
	if batch.Source == domain.SourceFallback {
		ttl = s.cfg.FallbackTTL
	}
	if err := s.writeBatch(ctx, key, batch, ttl); err != nil {
		logger.LogWarnf("generate", "failed to publish batch %s: %v", key, err)
	}
	return batch, nil
}

// waitForHolder polls the cache for the batch the lock holder is producing.
// Returns nil when the grace period elapses without a publication.
func (s *ProjectService) waitForHolder(ctx context.Context, key string) *domain.DailyBatch {
	for attempt := 0; attempt < s.cfg.LockPollAttempts; attempt++ {
		select {
		case <-time.After(s.cfg.LockPollInterval):
		case <-ctx.Done():
			return nil
		}
		batch, err := s.readBatch(ctx, key)
		if err == nil {
			s.bump(ctx, statsCacheHits, 1)
			return batch
		}
	}
	return nil
}

// buildBatch runs generation-or-fallback and assembles the batch with
// sequential ids and a shared timestamp. Never fails: the template catalog is
// the floor.
func (s *ProjectService) buildBatch(ctx context.Context, date string, count int) *domain.DailyBatch {
	logger := NewLogger(ctx)

	req := domain.GenerationRequest{
		Count:                count,
		DifficultyPreference: defaultDifficultyMix(count),
	}

	projects, err := s.generator.Generate(ctx, req)
	source := domain.SourceAI
	degraded := false
	fallbackCount := 0

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrGenerationDegraded):
		logger.LogWarnf("build_batch", "padding short batch for %s: %v", date, err)
		pad, _ := s.fallback.Sample(date, count-len(projects), nil, "")
		projects = append(projects, pad...)
		degraded = true
		fallbackCount = len(pad)
	default:
		logger.LogWarnf("build_batch", "generation failed for %s, using fallback: %v", date, err)
		var widened bool
		projects, widened = s.fallback.Sample(date, count, nil, "")
		source = domain.SourceFallback
		degraded = widened
		fallbackCount = len(projects)
	}

	generatedAt := s.now().UTC()
	for i := range projects {
		projects[i].ID = domain.ProjectID(date, i+1)
		projects[i].GeneratedAt = generatedAt
	}

	s.bump(ctx, statsTotalGenerated, int64(len(projects)))
	if source == domain.SourceAI {
		s.bump(ctx, statsAISourced, int64(len(projects)-fallbackCount))
		s.bump(ctx, statsFallbackSourced, int64(fallbackCount))
	} else {
		s.bump(ctx, statsFallbackSourced, int64(len(projects)))
	}

	return &domain.DailyBatch{
		Date:          date,
		Projects:      projects,
		Source:        source,
		Degraded:      degraded,
		FallbackCount: fallbackCount,
	}
}

// GenerateCustom produces projects for ad-hoc preferences. Results bypass the
// daily cache key; ids carry a random batch tag instead of a date.
func (s *ProjectService) GenerateCustom(ctx context.Context, req domain.GenerationRequest) ([]domain.Project, error) {
	logger := NewLogger(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	seedDate := s.now().Format(domain.DateLayout)
	projects, err := s.generator.Generate(ctx, req)
	fromFallback := 0
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrGenerationDegraded):
		pad, _ := s.fallback.Sample(seedDate, req.Count-len(projects), req.DifficultyPreference, req.CategoryPreference)
		projects = append(projects, pad...)
		fromFallback = len(pad)
	default:
		logger.LogWarnf("generate_custom", "generation failed, using fallback: %v", err)
		projects, _ = s.fallback.Sample(seedDate, req.Count, req.DifficultyPreference, req.CategoryPreference)
		fromFallback = len(projects)
	}

	batchTag := uuid.NewString()[:8]
	generatedAt := s.now().UTC()
	for i := range projects {
		projects[i].ID = fmt.Sprintf("custom-%s-%d", batchTag, i+1)
		projects[i].GeneratedAt = generatedAt
	}

	s.bump(ctx, statsTotalGenerated, int64(len(projects)))
	s.bump(ctx, statsAISourced, int64(len(projects)-fromFallback))
	s.bump(ctx, statsFallbackSourced, int64(fromFallback))

	return projects, nil
}

// GetByID resolves a daily project id by scanning the cached batches of the
// date embedded in the id.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	date, ok := domain.DateFromProjectID(id)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	keys, err := s.store.Keys(ctx, dailyKeyPrefix+date+":*")
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		batch, err := s.readBatch(ctx, key)
		if err != nil {
			continue
		}
		for i := range batch.Projects {
			if batch.Projects[i].ID == id {
				return &batch.Projects[i], nil
			}
		}
	}
	return nil, domain.ErrProjectNotFound
}

// GetStats reads the engine counters. A down cache yields an empty snapshot
// rather than an error.
func (s *ProjectService) GetStats(ctx context.Context) Stats {
	logger := NewLogger(ctx)
	var stats Stats

	read := func(key string, dst *int64) {
		val, err := s.store.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, cache.ErrCacheMiss) {
				logger.LogWarnf("get_stats", "read %s: %v", key, err)
			}
			return
		}
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			*dst = n
		}
	}

	read(statsTotalGenerated, &stats.TotalGenerated)
	read(statsAISourced, &stats.AISourced)
	read(statsFallbackSourced, &stats.FallbackSourced)
	read(statsCacheHits, &stats.CacheHits)
	read(statsCacheMisses, &stats.CacheMisses)

	if total := stats.CacheHits + stats.CacheMisses; total > 0 {
		stats.CacheHitRatio = float64(stats.CacheHits) / float64(total)
	}
	return stats
}

// ClearCache removes cached batches for one date, or every date when date is
// empty, and reports how many keys were deleted.
func (s *ProjectService) ClearCache(ctx context.Context, date string) (int64, error) {
	pattern := dailyKeyPrefix + "*"
	if date != "" {
		if _, err := domain.ParseDate(date); err != nil {
			return 0, err
		}
		pattern = dailyKeyPrefix + date + ":*"
	}
	return s.store.DeletePattern(ctx, pattern)
}

// GetArchive returns cached batches for up to the previous `days` days,
// newest first, three projects per entry. Days without a cached batch are
// skipped.
func (s *ProjectService) GetArchive(ctx context.Context, days int) ([]ArchiveEntry, error) {
	if days < 1 {
		return nil, &domain.ValidationError{Field: "days", Message: "must be at least 1"}
	}
	if days > maxArchiveDays {
		days = maxArchiveDays
	}

	var archive []ArchiveEntry
	today := s.now()
	for i := 1; i <= days; i++ {
		date := today.AddDate(0, 0, -i).Format(domain.DateLayout)
		keys, err := s.store.Keys(ctx, dailyKeyPrefix+date+":*")
		if err != nil {
			return nil, err
		}

		var best *domain.DailyBatch
		for _, key := range keys {
			batch, err := s.readBatch(ctx, key)
			if err != nil {
				continue
			}
			if best == nil || len(batch.Projects) > len(best.Projects) {
				best = batch
			}
		}
		if best == nil {
			continue
		}

		preview := best.Projects
		if len(preview) > 3 {
			preview = preview[:3]
		}
		archive = append(archive, ArchiveEntry{
			Date:     date,
			Projects: preview,
			Total:    len(best.Projects),
		})
	}
	return archive, nil
}

// Ping reports cache store reachability for health checks.
func (s *ProjectService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *ProjectService) readBatch(ctx context.Context, key string) (*domain.DailyBatch, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var batch domain.DailyBatch
	if err := json.Unmarshal([]byte(data), &batch); err != nil {
		return nil, fmt.Errorf("unmarshal batch %s: %w", key, err)
	}
	return &batch, nil
}

func (s *ProjectService) writeBatch(ctx context.Context, key string, batch *domain.DailyBatch, ttl time.Duration) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch %s: %w", key, err)
	}
	return s.store.Set(ctx, key, string(data), ttl)
}

// bump increments a stats counter, ignoring cache failures.
func (s *ProjectService) bump(ctx context.Context, key string, delta int64) {
	if delta == 0 {
		return
	}
	if _, err := s.store.IncrementBy(ctx, key, delta); err != nil {
		NewLogger(ctx).LogWarnf("stats", "increment %s: %v", key, err)
	}
}

func dailyKey(date string, count int) string {
	return fmt.Sprintf("%s%s:%d", dailyKeyPrefix, date, count)
}

// defaultDifficultyMix mirrors the product default: a five-project day is one
// beginner, two intermediate, two advanced. Other counts leave the mix to the
// generator.
func defaultDifficultyMix(count int) []domain.DifficultyLevel {
	if count != 5 {
		return nil
	}
	return []domain.DifficultyLevel{
		domain.DifficultyBeginner,
		domain.DifficultyIntermediate,
		domain.DifficultyIntermediate,
		domain.DifficultyAdvanced,
		domain.DifficultyAdvanced,
	}
}
