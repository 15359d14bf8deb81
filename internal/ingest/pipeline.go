package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/domain/scoring"
	"jobradar/internal/logger"
	"jobradar/internal/metrics"
)

var ErrAllSourcesFailed = errors.New("all ingest sources failed")

// RunResult summarizes one pipeline run.
type RunResult struct {
	Records   []job.Record
	PerSource map[string]int
	Failed    []string
	Duration  time.Duration
}

type Pipeline struct {
	sources []Source
	workers int
	maxJobs int
	timeout time.Duration
	log     logger.Logger
}

func NewPipeline(sources []Source, workers, maxJobs int, timeout time.Duration, log logger.Logger) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Pipeline{
		sources: sources,
		workers: workers,
		maxJobs: maxJobs,
		timeout: timeout,
		log:     logger.OrNop(log),
	}
}

// Run fetches every source concurrently and returns normalized, de-duplicated
// records. A failing source is logged and skipped; the run only fails when
// no source succeeded.
func (p *Pipeline) Run(ctx context.Context) (RunResult, error) {
	start := time.Now()
	res := RunResult{PerSource: make(map[string]int, len(p.sources))}
	if len(p.sources) == 0 {
		res.Records = []job.Record{}
		return res, nil
	}

	var mu sync.Mutex
	batches := make([][]job.RawJob, len(p.sources))

	pool := NewWorkerPool(p.workers, len(p.sources))
	results := pool.Run(ctx)
	for i, src := range p.sources {
		i, src := i, src
		pool.Submit(src.Name(), func(ctx context.Context) error {
			fctx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			raws, err := src.Fetch(fctx)
			if err != nil {
				return err
			}
			mu.Lock()
			batches[i] = raws
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	var lastErr error
	for r := range results {
		if r.Err != nil {
			lastErr = r.Err
			res.Failed = append(res.Failed, r.Name)
			metrics.SourceFailures.WithLabelValues(r.Name).Inc()
			p.log.Error("ingest source failed", map[string]interface{}{
				"source": r.Name,
				"error":  r.Err,
			})
		}
	}
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	if len(res.Failed) == len(p.sources) {
		return RunResult{}, fmt.Errorf("%w: %v", ErrAllSourcesFailed, lastErr)
	}

	seen := make(map[string]struct{})
	out := make([]job.Record, 0)
	for i, batch := range batches {
		if batch == nil {
			continue
		}
		name := p.sources[i].Name()
		for _, raw := range batch {
			rec, ok := Prepare(raw)
			if !ok {
				continue
			}
			if _, dup := seen[rec.ExternalID]; dup {
				continue
			}
			seen[rec.ExternalID] = struct{}{}

			out = append(out, rec)
			res.PerSource[name]++
		}
		metrics.JobsIngested.WithLabelValues(name).Add(float64(res.PerSource[name]))
		p.log.Info("ingest source fetched", map[string]interface{}{
			"source":  name,
			"fetched": len(batch),
			"kept":    res.PerSource[name],
		})
	}

	if p.maxJobs > 0 && len(out) > p.maxJobs {
		out = out[:p.maxJobs]
	}

	res.Records = out
	res.Duration = time.Since(start)
	p.log.Info("ingest pipeline finished", map[string]interface{}{
		"records":     len(out),
		"failed":      len(res.Failed),
		"duration_ms": res.Duration.Milliseconds(),
	})
	return res, nil
}

// Prepare normalizes a raw listing for storage. Listings without a title are
// rejected. Missing skills are extracted from the description and the
// external id is fixed to the record's upsert key.
func Prepare(raw job.RawJob) (job.Record, bool) {
	rec := scoring.Normalize(raw)
	if rec.Title == "" {
		return job.Record{}, false
	}
	if len(rec.Skills) == 0 {
		rec.Skills = ExtractSkills(rec.Description)
	}
	rec.ExternalID = rec.Key()
	return rec, true
}
