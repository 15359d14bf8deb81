package repository

import (
	"context"
	"fmt"
	"time"

	"jobradar/internal/database"
	"jobradar/internal/domain/job"
)

type SkillStatRepository interface {
	ReplaceAll(ctx context.Context, stats []job.SkillStat) error
	Top(ctx context.Context, n int) ([]job.SkillStat, error)
}

type PostgresSkillStatRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresSkillStatRepository(db database.DB) *PostgresSkillStatRepository {
	return &PostgresSkillStatRepository{db: db, now: time.Now}
}

// ReplaceAll swaps the table contents for stats in one transaction. Skills
// missing from stats are removed.
func (r *PostgresSkillStatRepository) ReplaceAll(ctx context.Context, stats []job.SkillStat) error {
	now := r.now().UTC()
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM skill_stats`); err != nil {
			return fmt.Errorf("clear skill stats: %w", err)
		}
		for _, s := range stats {
			_, err := tx.Exec(ctx,
				`INSERT INTO skill_stats (skill_name, frequency, job_count, avg_salary_impact, trend_direction, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				s.SkillName, s.Frequency, s.Count, s.AvgSalaryImpact, s.TrendDirection, now,
			)
			if err != nil {
				return fmt.Errorf("insert skill stat %q: %w", s.SkillName, err)
			}
		}
		return nil
	})
}

func (r *PostgresSkillStatRepository) Top(ctx context.Context, n int) ([]job.SkillStat, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT skill_name, frequency, job_count, COALESCE(avg_salary_impact, 0), COALESCE(trend_direction, 'stable'), updated_at
		 FROM skill_stats
		 ORDER BY job_count DESC, skill_name ASC
		 LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.SkillStat, 0)
	for rows.Next() {
		var s job.SkillStat
		if err := rows.Scan(&s.SkillName, &s.Frequency, &s.Count, &s.AvgSalaryImpact, &s.TrendDirection, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
