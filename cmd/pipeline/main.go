// Command pipeline runs migrations, sample seeding, a data refresh and a model retrain once.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobradar/internal/app"
	"jobradar/internal/config"
	"jobradar/internal/logger"
)

func main() {
	migrate := flag.Bool("migrate", true, "apply schema migrations first")
	seed := flag.Bool("seed", false, "load sample listings when the table is empty")
	refresh := flag.Bool("refresh", true, "fetch sources and store listings")
	train := flag.Bool("train", true, "retrain the salary model from stored listings")
	timeout := flag.Duration("timeout", 15*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.NewStructured(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		lg.Error("failed to init container", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	defer func() { _ = c.Close() }()

	if *migrate {
		if err := c.Migrate(ctx); err != nil {
			lg.Error("migration failed", map[string]interface{}{"error": err})
			os.Exit(1)
		}
	}

	if *seed {
		if err := c.Seed(ctx); err != nil {
			lg.Error("seed failed", map[string]interface{}{"error": err})
			os.Exit(1)
		}
	}

	if *refresh {
		s, err := c.DataRefresh.Refresh(ctx)
		if err != nil {
			lg.Error("refresh failed", map[string]interface{}{"error": err})
			os.Exit(1)
		}
		lg.Info("refresh complete", map[string]interface{}{
			"fetched":        s.JobsFetched,
			"stored":         s.JobsStored,
			"failed_sources": s.FailedSources,
		})
	}

	if *train {
		s, err := c.DataRefresh.Retrain(ctx)
		if err != nil {
			lg.Error("retrain failed", map[string]interface{}{"error": err})
			os.Exit(1)
		}
		lg.Info("retrain complete", map[string]interface{}{"samples": s.Samples, "mode": s.ModelMode})
	}
}
