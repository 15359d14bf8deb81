package usecase

import (
	"context"
	"sync"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/domain/scoring"
	"jobradar/internal/ingest"
	"jobradar/internal/logger"
	"jobradar/internal/metrics"
	"jobradar/internal/repository"
)

const (
	EventJobsRefreshed  = "jobs_refreshed"
	EventModelRetrained = "model_retrained"

	skillStatsTracked = 50
)

// EventPublisher fans update notifications out to live subscribers.
type EventPublisher interface {
	Publish(event string, data any)
}

type IngestPipeline interface {
	Run(ctx context.Context) (ingest.RunResult, error)
}

type RefreshSummary struct {
	JobsFetched   int            `json:"jobs_fetched"`
	JobsStored    int            `json:"jobs_stored"`
	PerSource     map[string]int `json:"per_source"`
	FailedSources []string       `json:"failed_sources"`
	SkillsTracked int            `json:"skills_tracked"`
	DurationMs    int64          `json:"duration_ms"`
}

type RetrainSummary struct {
	Samples   int       `json:"samples"`
	ModelMode string    `json:"model_mode"`
	TrainedAt time.Time `json:"trained_at"`
}

type IngestSummary struct {
	Received int `json:"received"`
	Stored   int `json:"stored"`
	Skipped  int `json:"skipped"`
}

type DataRefreshUsecase interface {
	Refresh(ctx context.Context) (RefreshSummary, error)
	Retrain(ctx context.Context) (RetrainSummary, error)
	Ingest(ctx context.Context, raws []job.RawJob) (IngestSummary, error)
}

type DataRefresh struct {
	pipeline    IngestPipeline
	jobs        repository.JobListingRepository
	skills      repository.SkillStatRepository
	estimator   SalaryModel
	cache       ListingCache
	events      EventPublisher
	corpusLimit int
	log         logger.Logger

	refreshMu sync.Mutex
	retrainMu sync.Mutex
}

func NewDataRefreshUsecase(
	pipeline IngestPipeline,
	jobs repository.JobListingRepository,
	skills repository.SkillStatRepository,
	estimator SalaryModel,
	cache ListingCache,
	events EventPublisher,
	corpusLimit int,
	log logger.Logger,
) *DataRefresh {
	return &DataRefresh{
		pipeline:    pipeline,
		jobs:        jobs,
		skills:      skills,
		estimator:   estimator,
		cache:       cache,
		events:      events,
		corpusLimit: corpusLimit,
		log:         logger.OrNop(log),
	}
}

// Refresh pulls every configured source, stores the result and rebuilds the
// derived skill statistics. Concurrent calls fail fast with ErrBusy.
func (u *DataRefresh) Refresh(ctx context.Context) (RefreshSummary, error) {
	if !u.refreshMu.TryLock() {
		return RefreshSummary{}, ErrBusy
	}
	defer u.refreshMu.Unlock()

	start := time.Now()
	res, err := u.pipeline.Run(ctx)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("failed").Inc()
		u.log.Error("refresh pipeline failed", map[string]interface{}{"error": err})
		return RefreshSummary{}, ErrInternal
	}

	stored, err := u.jobs.UpsertMany(ctx, res.Records)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("failed").Inc()
		u.log.Error("refresh store failed", map[string]interface{}{"error": err})
		return RefreshSummary{}, ErrInternal
	}

	tracked, err := u.rebuildSkillStats(ctx)
	if err != nil {
		// listings are stored; stale skill stats are tolerable
		u.log.Warn("skill stats rebuild failed", map[string]interface{}{"error": err})
	}
	u.invalidate(ctx)

	failed := res.Failed
	if failed == nil {
		failed = []string{}
	}
	summary := RefreshSummary{
		JobsFetched:   len(res.Records),
		JobsStored:    stored,
		PerSource:     res.PerSource,
		FailedSources: failed,
		SkillsTracked: tracked,
		DurationMs:    time.Since(start).Milliseconds(),
	}
	metrics.PipelineRuns.WithLabelValues("success").Inc()
	u.log.Info("data refreshed", map[string]interface{}{
		"fetched":     summary.JobsFetched,
		"stored":      summary.JobsStored,
		"failed":      len(failed),
		"duration_ms": summary.DurationMs,
	})
	u.publish(EventJobsRefreshed, summary)
	return summary, nil
}

func (u *DataRefresh) Retrain(ctx context.Context) (RetrainSummary, error) {
	if !u.retrainMu.TryLock() {
		return RetrainSummary{}, ErrBusy
	}
	defer u.retrainMu.Unlock()

	corpus, err := u.jobs.ListRecords(ctx, u.corpusLimit)
	if err != nil {
		metrics.RetrainRuns.WithLabelValues("failed").Inc()
		u.log.Error("load training corpus failed", map[string]interface{}{"error": err})
		return RetrainSummary{}, ErrInternal
	}

	if err := u.estimator.Train(ctx, corpus); err != nil {
		metrics.RetrainRuns.WithLabelValues("failed").Inc()
		u.log.Error("salary model training failed", map[string]interface{}{
			"samples": len(corpus),
			"error":   err,
		})
		return RetrainSummary{}, ErrInternal
	}

	mode := u.estimator.Mode()
	if mode == scoring.ModeTrained {
		metrics.SalaryModelTrained.Set(1)
	} else {
		metrics.SalaryModelTrained.Set(0)
	}
	metrics.RetrainRuns.WithLabelValues("success").Inc()

	summary := RetrainSummary{Samples: len(corpus), ModelMode: mode, TrainedAt: u.estimator.TrainedAt()}
	u.log.Info("salary model retrained", map[string]interface{}{
		"samples": summary.Samples,
		"mode":    mode,
	})
	u.publish(EventModelRetrained, summary)
	return summary, nil
}

// Ingest stores listings pushed by an operator.
func (u *DataRefresh) Ingest(ctx context.Context, raws []job.RawJob) (IngestSummary, error) {
	if len(raws) == 0 {
		return IngestSummary{}, &ValidationError{Fields: map[string]string{"jobs": "must not be empty"}}
	}

	seen := make(map[string]struct{}, len(raws))
	records := make([]job.Record, 0, len(raws))
	for _, raw := range raws {
		rec, ok := ingest.Prepare(raw)
		if !ok {
			continue
		}
		if _, dup := seen[rec.ExternalID]; dup {
			continue
		}
		seen[rec.ExternalID] = struct{}{}
		records = append(records, rec)
	}

	stored, err := u.jobs.UpsertMany(ctx, records)
	if err != nil {
		u.log.Error("ingest store failed", map[string]interface{}{"error": err})
		return IngestSummary{}, ErrInternal
	}
	metrics.JobsIngested.WithLabelValues("admin").Add(float64(stored))

	if _, err := u.rebuildSkillStats(ctx); err != nil {
		u.log.Warn("skill stats rebuild failed", map[string]interface{}{"error": err})
	}
	u.invalidate(ctx)

	summary := IngestSummary{Received: len(raws), Stored: stored, Skipped: len(raws) - len(records)}
	u.publish(EventJobsRefreshed, summary)
	return summary, nil
}

func (u *DataRefresh) rebuildSkillStats(ctx context.Context) (int, error) {
	corpus, err := u.jobs.ListRecords(ctx, u.corpusLimit)
	if err != nil {
		return 0, err
	}
	trends := scoring.TopSkills(corpus, skillStatsTracked)
	stats := make([]job.SkillStat, 0, len(trends))
	for _, t := range trends {
		stats = append(stats, job.SkillStat{
			SkillName:       t.Skill,
			Frequency:       t.Frequency,
			Count:           t.Count,
			AvgSalaryImpact: t.AvgSalaryImpact,
			TrendDirection:  t.Trend,
		})
	}
	if err := u.skills.ReplaceAll(ctx, stats); err != nil {
		return 0, err
	}
	return len(stats), nil
}

func (u *DataRefresh) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateListings(ctx); err != nil {
		u.log.Warn("cache invalidation failed", map[string]interface{}{"error": err})
	}
}

func (u *DataRefresh) publish(event string, data any) {
	if u.events == nil {
		return
	}
	u.events.Publish(event, data)
}
