package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"jobradar/internal/database/postgres"
	"jobradar/internal/domain/job"
	"jobradar/internal/domain/scoring"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresJobListingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresJobListingRepository(postgres.NewSQLDB(db)), mock
}

var listingColumnNames = []string{
	"id", "external_id", "title", "company", "location", "job_url", "description",
	"salary_min", "salary_max", "salary_currency", "job_type", "experience_level", "remote_type",
	"company_type", "skills_required", "source", "posted_date", "created_at", "updated_at",
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "single", in: "python", want: []string{"python"}},
		{name: "blank entries dropped", in: "go, ,sql,,", want: []string{"go", "sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSkills(tt.in))
		})
	}
}

func TestJoinSkills_RoundTripsNormalizedSkills(t *testing.T) {
	skills := scoring.NormalizeSkills([]string{"Python, SQL", "Go"})
	assert.Equal(t, skills, SplitSkills(JoinSkills(skills)))
}

func TestJobListingRepository_UpsertMany(t *testing.T) {
	repo, mock := newMockRepo(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	salaryMax := 150000.0
	records := []job.Record{
		{ExternalID: "ext-1", Title: "Go Dev", Skills: []string{"docker", "go"}, SalaryMax: &salaryMax},
		{ExternalID: "ext-2", Title: "Data Engineer", Skills: []string{}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO job_listings`).
		WithArgs(sqlmock.AnyArg(), "ext-1", "Go Dev", "", "", "", "", nil, 150000.0, "", "", "", "", "", "docker,go", "", nil, fixed).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO job_listings`).
		WithArgs(sqlmock.AnyArg(), "ext-2", "Data Engineer", "", "", "", "", nil, nil, "", "", "", "", "", "", "", nil, fixed).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	n, err := repo.UpsertMany(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingRepository_UpsertMany_RollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO job_listings`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	n, err := repo.UpsertMany(context.Background(), []job.Record{{ExternalID: "x", Title: "t"}})
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingRepository_UpsertMany_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)
	n, err := repo.UpsertMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT .* FROM job_listings WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(listingColumnNames).AddRow(
			id.String(), "ext-1", "Senior Go Engineer", "Acme", "Remote", "https://x/1", "desc",
			nil, 180000.0, "USD", "full-time", "senior", "fully-remote",
			"startup", "aws,go", "simulated", nil, created, created,
		))

	l, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, l.ID)
	assert.Equal(t, "Senior Go Engineer", l.Record.Title)
	assert.Nil(t, l.Record.SalaryMin)
	require.NotNil(t, l.Record.SalaryMax)
	assert.Equal(t, 180000.0, *l.Record.SalaryMax)
	assert.Nil(t, l.Record.PostedAt)
	assert.Equal(t, []string{"aws", "go"}, l.Record.Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`(?s)SELECT .* FROM job_listings`).WillReturnRows(sqlmock.NewRows(listingColumnNames))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestBuildSearchQuery(t *testing.T) {
	salary := 90000.0
	tests := []struct {
		name      string
		filter    job.SearchFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:     "no filters uses default page",
			filter:   job.SearchFilter{},
			wantArgs: []any{20, 0},
		},
		{
			name:      "keyword matches title or description",
			filter:    job.SearchFilter{Keyword: " golang ", Limit: 5, Offset: 10},
			wantWhere: "WHERE (title ILIKE $1 OR description ILIKE $1) ORDER",
			wantArgs:  []any{"%golang%", 5, 10},
		},
		{
			name: "all filters",
			filter: job.SearchFilter{
				Keyword:         "go",
				ExperienceLevel: "senior",
				RemoteType:      "fully-remote",
				SalaryMin:       &salary,
				Location:        "berlin",
				Limit:           500,
			},
			wantWhere: "WHERE (title ILIKE $1 OR description ILIKE $1) AND experience_level = $2 AND remote_type = $3 AND salary_max >= $4 AND location ILIKE $5 ORDER",
			wantArgs:  []any{"%go%", "senior", "fully-remote", 90000.0, "%berlin%", 100, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := buildSearchQuery(tt.filter)
			if tt.wantWhere == "" {
				assert.NotContains(t, q, "WHERE")
			} else {
				assert.Contains(t, q, tt.wantWhere)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestJobListingRepository_Search(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE experience_level = $1 ORDER BY posted_date DESC NULLS LAST`)).
		WithArgs("mid", 20, 0).
		WillReturnRows(sqlmock.NewRows(listingColumnNames).
			AddRow(uuid.NewString(), "a", "A", "Acme", "Remote", "", "", 80000.0, 100000.0, "USD", "", "mid", "hybrid", "startup", "python", "simulated", now, now, now).
			AddRow(uuid.NewString(), "b", "B", "Beta", "Berlin", "", "", nil, nil, "USD", "", "mid", "on-site", "enterprise", "", "simulated", now, now, now))

	out, err := repo.Search(context.Background(), job.SearchFilter{ExperienceLevel: "mid"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Record.Title)
	require.NotNil(t, out[0].Record.PostedAt)
	assert.Equal(t, []string{}, out[1].Record.Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingRepository_Statistics(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "avg", "remote", "last", "prior"}).
			AddRow(int64(40), 125000.0, int64(10), int64(12), int64(8)))
	mock.ExpectQuery(`SELECT company, COUNT\(\*\) AS n`).
		WillReturnRows(sqlmock.NewRows([]string{"company", "n"}).
			AddRow("Acme", int64(7)).
			AddRow("Beta", int64(5)))
	mock.ExpectQuery(`SELECT experience_level`).
		WillReturnRows(sqlmock.NewRows([]string{"experience_level", "count", "avg"}).
			AddRow("mid", int64(25), 110000.0).
			AddRow("senior", int64(15), 150000.0))

	st, err := repo.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, st.TotalJobs)
	assert.InDelta(t, 25.0, st.RemotePercentage, 1e-9)
	assert.Equal(t, 12, st.PostedLastWeek)
	assert.Equal(t, 8, st.PostedPriorWeek)
	assert.Equal(t, []job.CompanyCount{{Name: "Acme", Count: 7}, {Name: "Beta", Count: 5}}, st.TopCompanies)
	assert.Equal(t, map[string]int{"mid": 25, "senior": 15}, st.ExperienceDistribution)
	assert.Equal(t, 150000.0, st.AvgSalaryByExperience["senior"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobListingRepository_ListRecords_DefaultLimit(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(1000).
		WillReturnRows(sqlmock.NewRows(listingColumnNames))

	out, err := repo.ListRecords(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}
