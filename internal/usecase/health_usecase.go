package usecase

import (
	"context"
	"time"

	"jobradar/internal/database"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusUp       = "up"
	StatusDown     = "down"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolStatsReporter is implemented by database handles that expose
// connection pool counters.
type PoolStatsReporter interface {
	PoolStats() database.PoolStats
}

type HealthReport struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	ModelMode string `json:"model_mode"`

	Pool *database.PoolStats `json:"pool,omitempty"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}

type Health struct {
	service   string
	version   string
	db        Pinger
	redis     Pinger
	estimator SalaryModel
}

func NewHealthUsecase(service, version string, db, redis Pinger, estimator SalaryModel) *Health {
	return &Health{service: service, version: version, db: db, redis: redis, estimator: estimator}
}

// Check reports dependency status. Redis is optional, so only a database
// failure degrades the service.
func (u *Health) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	r := HealthReport{
		Status:    StatusHealthy,
		Service:   u.service,
		Version:   u.version,
		Database:  pingStatus(ctx, u.db),
		Redis:     pingStatus(ctx, u.redis),
		ModelMode: u.estimator.Mode(),
	}
	if r.Database != StatusUp {
		r.Status = StatusDegraded
	}
	if ps, ok := u.db.(PoolStatsReporter); ok {
		st := ps.PoolStats()
		r.Pool = &st
	}
	return r
}

func pingStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return StatusDown
	}
	if err := p.Ping(ctx); err != nil {
		return StatusDown
	}
	return StatusUp
}
