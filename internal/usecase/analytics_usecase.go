package usecase

import (
	"context"
	"strings"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/domain/scoring"
	"jobradar/internal/infrastructure/cache"
	"jobradar/internal/logger"
	"jobradar/internal/metrics"
	"jobradar/internal/repository"
)

const (
	dashboardTopSkills = 10
	analyticsCacheTTL  = 5 * time.Minute
)

type Dashboard struct {
	TotalJobs             int                `json:"total_jobs"`
	AvgSalary             float64            `json:"avg_salary"`
	TopCompanies          []job.CompanyCount `json:"top_companies"`
	TopSkills             []job.SkillStat    `json:"top_skills"`
	AvgSalaryByExperience map[string]float64 `json:"avg_salary_by_experience"`
	RemotePercentage      float64            `json:"remote_percentage"`
	GrowthRate            float64            `json:"growth_rate"`
}

type DetailedStats struct {
	job.Statistics
	ModelMode      string     `json:"model_mode"`
	ModelTrainedAt *time.Time `json:"model_trained_at,omitempty"`
}

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	SkillTrend(ctx context.Context, skill string) (scoring.SkillTrend, error)
	DetailedStats(ctx context.Context) (DetailedStats, error)
}

type Analytics struct {
	jobs        repository.JobListingRepository
	skills      repository.SkillStatRepository
	estimator   SalaryModel
	cache       SearchCache
	corpusLimit int
	log         logger.Logger
}

func NewAnalyticsUsecase(
	jobs repository.JobListingRepository,
	skills repository.SkillStatRepository,
	estimator SalaryModel,
	cache SearchCache,
	corpusLimit int,
	log logger.Logger,
) *Analytics {
	return &Analytics{
		jobs:        jobs,
		skills:      skills,
		estimator:   estimator,
		cache:       cache,
		corpusLimit: corpusLimit,
		log:         logger.OrNop(log),
	}
}

func (u *Analytics) Dashboard(ctx context.Context) (Dashboard, error) {
	var out Dashboard
	if u.cache != nil {
		if hit, err := u.cache.GetJSON(ctx, cache.StatsKey, &out); err == nil && hit {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return out, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	st, err := u.jobs.Statistics(ctx)
	if err != nil {
		u.log.Error("load statistics failed", map[string]interface{}{"error": err})
		return Dashboard{}, ErrInternal
	}
	top, err := u.skills.Top(ctx, dashboardTopSkills)
	if err != nil {
		u.log.Error("load top skills failed", map[string]interface{}{"error": err})
		return Dashboard{}, ErrInternal
	}

	out = Dashboard{
		TotalJobs:             st.TotalJobs,
		AvgSalary:             st.AvgSalary,
		TopCompanies:          st.TopCompanies,
		TopSkills:             top,
		AvgSalaryByExperience: st.AvgSalaryByExperience,
		RemotePercentage:      st.RemotePercentage,
		GrowthRate:            GrowthRate(st.PostedLastWeek, st.PostedPriorWeek),
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cache.StatsKey, out, analyticsCacheTTL)
	}
	return out, nil
}

// GrowthRate is the week-over-week change in postings, in percent. With no
// postings in the prior week there is no base to compare against.
func GrowthRate(lastWeek, priorWeek int) float64 {
	if priorWeek <= 0 {
		return 0
	}
	return float64(lastWeek-priorWeek) / float64(priorWeek) * 100
}

func (u *Analytics) SkillTrend(ctx context.Context, skill string) (scoring.SkillTrend, error) {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return scoring.SkillTrend{}, &ValidationError{Fields: map[string]string{"skill": "is required"}}
	}

	key := cache.TrendPrefix + skill
	if u.cache != nil {
		var cached scoring.SkillTrend
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	corpus, err := u.jobs.ListRecords(ctx, u.corpusLimit)
	if err != nil {
		u.log.Error("load corpus failed", map[string]interface{}{"error": err})
		return scoring.SkillTrend{}, ErrInternal
	}

	trend := scoring.Trend(skill, corpus)
	metrics.ScoresComputed.WithLabelValues("trend").Inc()

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, trend, analyticsCacheTTL)
	}
	return trend, nil
}

func (u *Analytics) DetailedStats(ctx context.Context) (DetailedStats, error) {
	st, err := u.jobs.Statistics(ctx)
	if err != nil {
		u.log.Error("load statistics failed", map[string]interface{}{"error": err})
		return DetailedStats{}, ErrInternal
	}

	out := DetailedStats{Statistics: st, ModelMode: u.estimator.Mode()}
	if at := u.estimator.TrainedAt(); !at.IsZero() {
		out.ModelTrainedAt = &at
	}
	return out, nil
}
