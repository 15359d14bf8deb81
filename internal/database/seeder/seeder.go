// Package seeder fills a fresh jobradar database with sample listings so the
// API can serve and the salary model can train before the first live ingest.
package seeder

import (
	"context"
	"fmt"
	"strings"

	"jobradar/internal/database"
	"jobradar/internal/domain/job"
	"jobradar/internal/ingest"
	"jobradar/internal/logger"
	"jobradar/internal/repository"
)

const listingsTable = "job_listings"

// Columns the listing upsert writes through; a database migrated from an
// older schema fails fast instead of half-seeding.
var listingColumns = []string{"id", "external_id", "title", "skills_required", "posted_date"}

// ListingSeeder loads listings from Sources into an empty job_listings table.
// A populated table is left alone.
type ListingSeeder struct {
	Sources []ingest.Source
	Log     logger.Logger
}

// NewListingSeeder seeds from the simulated feed.
func NewListingSeeder(log logger.Logger) ListingSeeder {
	return ListingSeeder{Sources: []ingest.Source{ingest.NewSimulatedSource()}, Log: log}
}

func (s ListingSeeder) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("seed listings: nil db")
	}
	if len(s.Sources) == 0 {
		return fmt.Errorf("seed listings: no sources")
	}
	log := logger.OrNop(s.Log)

	missing, err := missingColumns(ctx, db, listingsTable, listingColumns)
	if err != nil {
		return fmt.Errorf("seed listings: read columns: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("seed listings: schema mismatch: %s missing %s", listingsTable, strings.Join(missing, ", "))
	}

	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM job_listings`).Scan(&n); err != nil {
		return fmt.Errorf("seed listings: count: %w", err)
	}
	if n > 0 {
		log.Debug("listings already present, skipping seed", map[string]interface{}{"count": n})
		return nil
	}

	var records []job.Record
	for _, src := range s.Sources {
		if src == nil {
			continue
		}
		raws, err := src.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("seed listings: fetch %s: %w", src.Name(), err)
		}
		for _, raw := range raws {
			if rec, ok := ingest.Prepare(raw); ok {
				records = append(records, rec)
			}
		}
	}

	written, err := repository.NewPostgresJobListingRepository(db).UpsertMany(ctx, records)
	if err != nil {
		return fmt.Errorf("seed listings: %w", err)
	}
	log.Info("sample listings seeded", map[string]interface{}{"listings": written})
	return nil
}

// missingColumns returns the entries of want that table lacks, in order.
func missingColumns(ctx context.Context, db database.DB, table string, want []string) ([]string, error) {
	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	have := make(map[string]bool, len(want))
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, err
		}
		have[col] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, col := range want {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	return missing, nil
}
