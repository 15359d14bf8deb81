package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/domain/scoring"
	"jobradar/internal/logger"
	"jobradar/internal/metrics"
	"jobradar/internal/repository"

	"github.com/google/uuid"
)

const (
	PreferenceSourceRequest = "request"
	PreferenceSourceStored  = "stored"
	PreferenceSourceDefault = "default"
)

// SalaryModel is the estimator surface the use cases depend on.
type SalaryModel interface {
	Estimate(r job.Record) (float64, float64)
	Mode() string
	TrainedAt() time.Time
	Train(ctx context.Context, corpus []job.Record) error
}

type SalaryPrediction struct {
	JobID     uuid.UUID
	Min       float64
	Max       float64
	Currency  string
	ModelMode string
}

type RecommendationInput struct {
	JobID       uuid.UUID
	UserID      string
	Preferences *job.UserPreference
}

type RecommendationResult struct {
	JobID            uuid.UUID
	PreferenceSource string
	scoring.Recommendation
}

type PredictionUsecase interface {
	PredictSalary(ctx context.Context, jobID uuid.UUID) (SalaryPrediction, error)
	Recommend(ctx context.Context, in RecommendationInput) (RecommendationResult, error)
}

type Prediction struct {
	jobs      repository.JobListingRepository
	prefs     repository.UserPreferenceRepository
	estimator SalaryModel
	log       logger.Logger
}

func NewPredictionUsecase(jobs repository.JobListingRepository, prefs repository.UserPreferenceRepository, estimator SalaryModel, log logger.Logger) *Prediction {
	return &Prediction{jobs: jobs, prefs: prefs, estimator: estimator, log: logger.OrNop(log)}
}

func (u *Prediction) PredictSalary(ctx context.Context, jobID uuid.UUID) (SalaryPrediction, error) {
	l, err := u.loadJob(ctx, jobID)
	if err != nil {
		return SalaryPrediction{}, err
	}

	lo, hi := u.estimator.Estimate(l.Record)
	metrics.ScoresComputed.WithLabelValues("salary").Inc()

	currency := l.Record.SalaryCurrency
	if currency == "" {
		currency = job.DefaultCurrency
	}
	return SalaryPrediction{
		JobID:     l.ID,
		Min:       lo,
		Max:       hi,
		Currency:  currency,
		ModelMode: u.estimator.Mode(),
	}, nil
}

// Recommend scores a listing for a seeker. Preferences come from the request,
// else from the caller's stored profile, else the defaults.
func (u *Prediction) Recommend(ctx context.Context, in RecommendationInput) (RecommendationResult, error) {
	l, err := u.loadJob(ctx, in.JobID)
	if err != nil {
		return RecommendationResult{}, err
	}

	pref, source := u.resolvePreference(ctx, in)
	rec := scoring.Recommend(l.Record, pref)
	metrics.ScoresComputed.WithLabelValues("recommendation").Inc()

	return RecommendationResult{
		JobID:            l.ID,
		PreferenceSource: source,
		Recommendation:   rec,
	}, nil
}

func (u *Prediction) resolvePreference(ctx context.Context, in RecommendationInput) (job.UserPreference, string) {
	if in.Preferences != nil {
		return in.Preferences.WithDefaults(), PreferenceSourceRequest
	}

	userID := strings.TrimSpace(in.UserID)
	if userID != "" && u.prefs != nil {
		stored, err := u.prefs.Get(ctx, userID)
		switch {
		case err == nil:
			return stored.Preference.WithDefaults(), PreferenceSourceStored
		case !errors.Is(err, repository.ErrPreferenceNotFound):
			u.log.Warn("load stored preferences failed", map[string]interface{}{
				"user_id": userID,
				"error":   err,
			})
		}
	}
	return job.DefaultPreference(), PreferenceSourceDefault
}

func (u *Prediction) loadJob(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	if id == uuid.Nil {
		return job.Listing{}, ErrInvalidInput
	}
	l, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Listing{}, ErrJobNotFound
		}
		u.log.Error("load job failed", map[string]interface{}{"job_id": id.String(), "error": err})
		return job.Listing{}, ErrInternal
	}
	return l, nil
}
