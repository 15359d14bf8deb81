package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobradar/internal/database"
	"jobradar/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrPreferenceNotFound = errors.New("preference not found")
)

type UserPreferenceRepository interface {
	Get(ctx context.Context, userID string) (job.StoredPreference, error)
	Upsert(ctx context.Context, p job.StoredPreference) (job.StoredPreference, error)
}

type PostgresUserPreferenceRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresUserPreferenceRepository(db database.DB) *PostgresUserPreferenceRepository {
	return &PostgresUserPreferenceRepository{db: db, now: time.Now}
}

func (r *PostgresUserPreferenceRepository) Get(ctx context.Context, userID string) (job.StoredPreference, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, preferences, saved_jobs, updated_at
		 FROM user_preferences
		 WHERE user_id = $1`,
		userID,
	)

	var out job.StoredPreference
	var prefs, saved []byte
	if err := row.Scan(&out.UserID, &prefs, &saved, &out.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.StoredPreference{}, ErrPreferenceNotFound
		}
		return job.StoredPreference{}, err
	}
	if err := json.Unmarshal(prefs, &out.Preference); err != nil {
		return job.StoredPreference{}, fmt.Errorf("decode preferences: %w", err)
	}
	out.SavedJobs = make([]uuid.UUID, 0)
	if len(saved) > 0 {
		if err := json.Unmarshal(saved, &out.SavedJobs); err != nil {
			return job.StoredPreference{}, fmt.Errorf("decode saved jobs: %w", err)
		}
	}
	out.Preference = out.Preference.WithDefaults()
	return out, nil
}

func (r *PostgresUserPreferenceRepository) Upsert(ctx context.Context, p job.StoredPreference) (job.StoredPreference, error) {
	p.Preference = p.Preference.WithDefaults()
	if p.SavedJobs == nil {
		p.SavedJobs = make([]uuid.UUID, 0)
	}
	prefs, err := json.Marshal(p.Preference)
	if err != nil {
		return job.StoredPreference{}, err
	}
	saved, err := json.Marshal(p.SavedJobs)
	if err != nil {
		return job.StoredPreference{}, err
	}

	p.UpdatedAt = r.now().UTC()
	_, err = r.db.Exec(ctx,
		`INSERT INTO user_preferences (user_id, preferences, saved_jobs, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
			preferences = EXCLUDED.preferences,
			saved_jobs = EXCLUDED.saved_jobs,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, string(prefs), string(saved), p.UpdatedAt,
	)
	if err != nil {
		return job.StoredPreference{}, err
	}
	return p, nil
}
