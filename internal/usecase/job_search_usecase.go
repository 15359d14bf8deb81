package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/logger"
	"jobradar/internal/metrics"
	"jobradar/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100

	searchLockTTL = 30 * time.Second
)

type JobSearchParams struct {
	Keyword         string
	ExperienceLevel string
	RemoteType      string
	SalaryMin       *float64
	Location        string
	Limit           int
	Offset          int
}

type JobSearchUsecase interface {
	Search(ctx context.Context, params JobSearchParams) ([]job.Listing, error)
	GetJob(ctx context.Context, id uuid.UUID) (job.Listing, error)
}

type JobSearch struct {
	jobs     repository.JobListingRepository
	cache    SearchCache
	cacheTTL time.Duration
	log      logger.Logger

	sleep func(time.Duration)
}

func NewJobSearchUsecase(jobs repository.JobListingRepository, cache SearchCache, cacheTTL time.Duration, log logger.Logger) *JobSearch {
	return &JobSearch{
		jobs:     jobs,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      logger.OrNop(log),
		sleep:    time.Sleep,
	}
}

func (u *JobSearch) Search(ctx context.Context, params JobSearchParams) ([]job.Listing, error) {
	params, err := validateSearchParams(params)
	if err != nil {
		return nil, err
	}

	cacheKey := JobsSearchCacheKey(params)
	lockKey := JobsSearchLockKey(cacheKey)

	if cached, ok := u.lookup(ctx, cacheKey); ok {
		return cached, nil
	}

	if u.cache != nil {
		acquired, err := u.cache.SetIfNotExists(ctx, lockKey, "1", searchLockTTL)
		switch {
		case err == nil && acquired:
			defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lockKey) }()
		case err == nil && !acquired:
			// another request is filling this key
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			u.sleep(300*time.Millisecond + jitter)
			if cached, ok := u.lookup(ctx, cacheKey); ok {
				return cached, nil
			}
			u.log.Debug("search lock wait fallback", map[string]interface{}{"key": lockKey})
		}
	}

	items, err := u.jobs.Search(ctx, job.SearchFilter{
		Keyword:         params.Keyword,
		ExperienceLevel: params.ExperienceLevel,
		RemoteType:      params.RemoteType,
		SalaryMin:       params.SalaryMin,
		Location:        params.Location,
		Limit:           params.Limit,
		Offset:          params.Offset,
	})
	if err != nil {
		u.log.Error("job search failed", map[string]interface{}{"error": err})
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, items, u.cacheTTL); err != nil {
			u.log.Warn("search cache write failed", map[string]interface{}{"key": cacheKey, "error": err})
		}
	}
	return items, nil
}

func (u *JobSearch) lookup(ctx context.Context, key string) ([]job.Listing, bool) {
	if u.cache == nil {
		return nil, false
	}
	var cached []job.Listing
	hit, err := u.cache.GetJSON(ctx, key, &cached)
	if err == nil && hit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		u.log.Debug("search cache hit", map[string]interface{}{"key": key})
		return cached, true
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()
	u.log.Debug("search cache miss", map[string]interface{}{"key": key})
	return nil, false
}

func (u *JobSearch) GetJob(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	if id == uuid.Nil {
		return job.Listing{}, ErrInvalidInput
	}
	l, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Listing{}, ErrJobNotFound
		}
		u.log.Error("get job failed", map[string]interface{}{"job_id": id.String(), "error": err})
		return job.Listing{}, ErrInternal
	}
	return l, nil
}

func validateSearchParams(p JobSearchParams) (JobSearchParams, error) {
	if p.Limit == 0 {
		p.Limit = defaultSearchLimit
	}
	if p.Limit < 0 || p.Limit > maxSearchLimit {
		return p, &ValidationError{Fields: map[string]string{"limit": "must be between 1 and 100"}}
	}
	if p.Offset < 0 {
		return p, &ValidationError{Fields: map[string]string{"offset": "must be >= 0"}}
	}
	if p.SalaryMin != nil && *p.SalaryMin < 0 {
		return p, &ValidationError{Fields: map[string]string{"salary_min": "must be >= 0"}}
	}
	p.Keyword = strings.TrimSpace(p.Keyword)
	p.Location = strings.TrimSpace(p.Location)
	p.ExperienceLevel = strings.ToLower(strings.TrimSpace(p.ExperienceLevel))
	p.RemoteType = strings.ToLower(strings.TrimSpace(p.RemoteType))
	return p, nil
}
