package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobradar/internal/database"
	"jobradar/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type JobListingRepository interface {
	UpsertMany(ctx context.Context, records []job.Record) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Listing, error)
	Search(ctx context.Context, f job.SearchFilter) ([]job.Listing, error)
	ListRecords(ctx context.Context, limit int) ([]job.Record, error)
	Statistics(ctx context.Context) (job.Statistics, error)
}

type PostgresJobListingRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresJobListingRepository(db database.DB) *PostgresJobListingRepository {
	return &PostgresJobListingRepository{db: db, now: time.Now}
}

const listingColumns = `id, external_id, title, company, location, job_url, description,
	salary_min, salary_max, salary_currency, job_type, experience_level, remote_type,
	company_type, skills_required, source, posted_date, created_at, updated_at`

const upsertListingSQL = `INSERT INTO job_listings (
	id, external_id, title, company, location, job_url, description,
	salary_min, salary_max, salary_currency, job_type, experience_level, remote_type,
	company_type, skills_required, source, posted_date, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
ON CONFLICT (external_id) DO UPDATE SET
	title = EXCLUDED.title,
	company = EXCLUDED.company,
	location = EXCLUDED.location,
	job_url = EXCLUDED.job_url,
	description = EXCLUDED.description,
	salary_min = EXCLUDED.salary_min,
	salary_max = EXCLUDED.salary_max,
	salary_currency = EXCLUDED.salary_currency,
	job_type = EXCLUDED.job_type,
	experience_level = EXCLUDED.experience_level,
	remote_type = EXCLUDED.remote_type,
	company_type = EXCLUDED.company_type,
	skills_required = EXCLUDED.skills_required,
	source = EXCLUDED.source,
	posted_date = EXCLUDED.posted_date,
	updated_at = EXCLUDED.updated_at`

// UpsertMany writes records in one transaction keyed by external id.
func (r *PostgresJobListingRepository) UpsertMany(ctx context.Context, records []job.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	now := r.now().UTC()
	written := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, rec := range records {
			_, err := tx.Exec(ctx, upsertListingSQL,
				uuid.New(),
				rec.Key(),
				rec.Title,
				rec.Company,
				rec.Location,
				rec.JobURL,
				rec.Description,
				rec.SalaryMin,
				rec.SalaryMax,
				rec.SalaryCurrency,
				rec.JobType,
				rec.ExperienceLevel,
				rec.RemoteType,
				rec.CompanyType,
				JoinSkills(rec.Skills),
				rec.Source,
				rec.PostedAt,
				now,
			)
			if err != nil {
				return fmt.Errorf("upsert listing %q: %w", rec.Title, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (r *PostgresJobListingRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM job_listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Listing{}, ErrJobNotFound
		}
		return job.Listing{}, err
	}
	return l, nil
}

func (r *PostgresJobListingRepository) Search(ctx context.Context, f job.SearchFilter) ([]job.Listing, error) {
	query, args := buildSearchQuery(f)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildSearchQuery(f job.SearchFilter) (string, []any) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		p := arg("%" + kw + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}
	if v := strings.TrimSpace(f.ExperienceLevel); v != "" {
		where = append(where, "experience_level = "+arg(v))
	}
	if v := strings.TrimSpace(f.RemoteType); v != "" {
		where = append(where, "remote_type = "+arg(v))
	}
	if f.SalaryMin != nil {
		where = append(where, "salary_max >= "+arg(*f.SalaryMin))
	}
	if v := strings.TrimSpace(f.Location); v != "" {
		where = append(where, "location ILIKE "+arg("%"+v+"%"))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + listingColumns + ` FROM job_listings`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY posted_date DESC NULLS LAST, created_at DESC")
	b.WriteString(" LIMIT " + arg(limit) + " OFFSET " + arg(offset))

	return b.String(), args
}

// ListRecords returns the most recent listings as scoring records.
func (r *PostgresJobListingRepository) ListRecords(ctx context.Context, limit int) ([]job.Record, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+listingColumns+` FROM job_listings ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Record, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l.Record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobListingRepository) Statistics(ctx context.Context) (job.Statistics, error) {
	st := job.Statistics{
		TopCompanies:           []job.CompanyCount{},
		ExperienceDistribution: map[string]int{},
		AvgSalaryByExperience:  map[string]float64{},
	}

	var remote int
	row := r.db.QueryRow(ctx, `SELECT
		COUNT(*),
		COALESCE(AVG(salary_max), 0),
		COUNT(*) FILTER (WHERE remote_type = 'fully-remote'),
		COUNT(*) FILTER (WHERE posted_date >= now() - interval '7 days'),
		COUNT(*) FILTER (WHERE posted_date >= now() - interval '14 days' AND posted_date < now() - interval '7 days')
		FROM job_listings`)
	if err := row.Scan(&st.TotalJobs, &st.AvgSalary, &remote, &st.PostedLastWeek, &st.PostedPriorWeek); err != nil {
		return job.Statistics{}, fmt.Errorf("totals: %w", err)
	}
	if st.TotalJobs > 0 {
		st.RemotePercentage = float64(remote) / float64(st.TotalJobs) * 100
	}

	rows, err := r.db.Query(ctx, `SELECT company, COUNT(*) AS n FROM job_listings
		GROUP BY company ORDER BY n DESC, company ASC LIMIT 5`)
	if err != nil {
		return job.Statistics{}, fmt.Errorf("top companies: %w", err)
	}
	for rows.Next() {
		var c job.CompanyCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			rows.Close()
			return job.Statistics{}, err
		}
		st.TopCompanies = append(st.TopCompanies, c)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return job.Statistics{}, err
	}

	rows, err = r.db.Query(ctx, `SELECT experience_level, COUNT(*), COALESCE(AVG(salary_max), 0)
		FROM job_listings GROUP BY experience_level ORDER BY experience_level`)
	if err != nil {
		return job.Statistics{}, fmt.Errorf("experience distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var level string
		var n int
		var avg float64
		if err := rows.Scan(&level, &n, &avg); err != nil {
			return job.Statistics{}, err
		}
		st.ExperienceDistribution[level] = n
		st.AvgSalaryByExperience[level] = avg
	}
	if err := rows.Err(); err != nil {
		return job.Statistics{}, err
	}

	return st, nil
}

func scanListing(row database.Row) (job.Listing, error) {
	var l job.Listing
	var skills string
	rec := &l.Record
	err := row.Scan(
		&l.ID,
		&rec.ExternalID,
		&rec.Title,
		&rec.Company,
		&rec.Location,
		&rec.JobURL,
		&rec.Description,
		&rec.SalaryMin,
		&rec.SalaryMax,
		&rec.SalaryCurrency,
		&rec.JobType,
		&rec.ExperienceLevel,
		&rec.RemoteType,
		&rec.CompanyType,
		&skills,
		&rec.Source,
		&rec.PostedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return job.Listing{}, err
	}
	rec.Skills = SplitSkills(skills)
	return l, nil
}

// JoinSkills stores a skill set as a comma-joined string.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

// SplitSkills is the inverse of JoinSkills. Blank entries are dropped.
func SplitSkills(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
