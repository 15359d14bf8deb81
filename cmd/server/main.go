package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobradar/internal/app"
	"jobradar/internal/config"
	"jobradar/internal/logger"
	"jobradar/internal/scheduler"
)

const jobTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.NewStructured(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		lg.Error("failed to init container", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Warn("cleanup error", map[string]interface{}{"error": err})
		}
	}()

	migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
	err = c.Migrate(migCtx)
	migCancel()
	if err != nil {
		lg.Error("migration failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	if cfg.App.SeedOnStart {
		if err := c.Seed(ctx); err != nil {
			lg.Warn("sample seeding failed", map[string]interface{}{"error": err})
		}
	}

	go c.Hub.Run(ctx)

	sched := scheduler.New(lg)
	if cfg.Scheduler.Enabled {
		jobs := []scheduler.Job{
			{
				Name:    "refresh",
				Spec:    cfg.Scheduler.RefreshSchedule,
				Timeout: jobTimeout,
				Run: func(ctx context.Context) error {
					_, err := c.DataRefresh.Refresh(ctx)
					return err
				},
			},
			{
				Name:    "retrain",
				Spec:    cfg.Scheduler.RetrainSchedule,
				Timeout: jobTimeout,
				Run: func(ctx context.Context) error {
					_, err := c.DataRefresh.Retrain(ctx)
					return err
				},
			},
		}
		for _, j := range jobs {
			if err := sched.Add(j); err != nil {
				lg.Error("invalid schedule", map[string]interface{}{"job": j.Name, "error": err})
				os.Exit(1)
			}
		}
		sched.Start()
	}

	server := app.New(c)
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		lg.Error("invalid HTTP port", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("http server listening", map[string]interface{}{"addr": addr, "env": cfg.App.Environment})
		errCh <- server.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("server error", map[string]interface{}{"error": err})
		}
	case <-ctx.Done():
		lg.Info("shutdown requested", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop()
	if err := server.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Warn("shutdown error", map[string]interface{}{"error": err})
	}
}
