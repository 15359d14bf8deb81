package app

import (
	"context"
	"errors"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/database"
	"jobradar/internal/database/migration"
	"jobradar/internal/database/seeder"
	dbpostgres "jobradar/internal/database/postgres"
	"jobradar/internal/domain/scoring"
	"jobradar/internal/infrastructure/cache"
	"jobradar/internal/ingest"
	"jobradar/internal/logger"
	"jobradar/internal/metrics"
	"jobradar/internal/pkg/jwt"
	"jobradar/internal/ratelimit"
	"jobradar/internal/repository"
	"jobradar/internal/usecase"
	"jobradar/internal/ws"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config config.Config
	Log    logger.Logger

	DB        database.DB
	Cache     *cache.Redis
	Estimator *scoring.SalaryEstimator
	Limiter   ratelimit.Limiter
	JWT       jwt.Service
	Hub       *ws.Hub
	Pipeline  *ingest.Pipeline

	JobSearch   usecase.JobSearchUsecase
	Prediction  usecase.PredictionUsecase
	Analytics   usecase.AnalyticsUsecase
	DataRefresh usecase.DataRefreshUsecase
	Preferences usecase.PreferenceUsecase
	Auth        usecase.AuthUsecase
	Health      usecase.HealthUsecase
}

func NewContainer(ctx context.Context, cfg config.Config, log logger.Logger) (*Container, error) {
	log = logger.OrNop(log)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Log: log, DB: db}
	c.Cache = cache.NewRedis(ctx, cfg.Redis, log)

	c.Estimator = scoring.NewSalaryEstimator(scoring.NewFileStore(cfg.Models.Dir))
	if err := c.Estimator.Load(); err != nil {
		log.Warn("salary model artifacts unusable, serving baseline", map[string]interface{}{
			"dir":   cfg.Models.Dir,
			"error": err,
		})
	}
	if c.Estimator.Mode() == scoring.ModeTrained {
		metrics.SalaryModelTrained.Set(1)
	} else {
		metrics.SalaryModelTrained.Set(0)
	}

	if c.Cache.Available() {
		c.Limiter = ratelimit.NewRedis(c.Cache.Client(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		c.Limiter = ratelimit.NewMemory(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	sources, err := ingest.NewSources(cfg.Ingest, log)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Pipeline = ingest.NewPipeline(sources, cfg.Ingest.Workers, cfg.Ingest.MaxJobs, cfg.Ingest.Timeout, log)

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Hub = ws.NewHub(log)

	jobs := repository.NewPostgresJobListingRepository(db)
	skills := repository.NewPostgresSkillStatRepository(db)
	prefs := repository.NewPostgresUserPreferenceRepository(db)
	corpusLimit := cfg.Scheduler.RetrainLimit

	c.JobSearch = usecase.NewJobSearchUsecase(jobs, c.Cache, cfg.Redis.TTL, log)
	c.Prediction = usecase.NewPredictionUsecase(jobs, prefs, c.Estimator, log)
	c.Analytics = usecase.NewAnalyticsUsecase(jobs, skills, c.Estimator, c.Cache, corpusLimit, log)
	c.DataRefresh = usecase.NewDataRefreshUsecase(
		c.Pipeline, jobs, skills, c.Estimator, c.Cache, ws.NewPublisher(c.Hub, log), corpusLimit, log,
	)
	c.Preferences = usecase.NewPreferenceUsecase(prefs, log)
	c.Auth = usecase.NewAuthUsecase(c.JWT)
	c.Health = usecase.NewHealthUsecase(cfg.App.AppName, cfg.App.Version, db, c.Cache, c.Estimator)

	return c, nil
}

// Migrate applies the embedded schema migrations.
func (c *Container) Migrate(ctx context.Context) error {
	sqlDB := c.DB.SQLDB()
	if sqlDB == nil {
		return errors.New("database does not expose database/sql handle")
	}
	return migration.NewRunner(c.Log).Run(ctx, sqlDB)
}

// Seed loads sample listings into an empty database.
func (c *Container) Seed(ctx context.Context) error {
	return seeder.NewListingSeeder(c.Log).Run(ctx, c.DB)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
