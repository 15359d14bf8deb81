package seeder

import (
	"context"
	"errors"
	"testing"

	"jobradar/internal/database/postgres"
	"jobradar/internal/domain/job"
	"jobradar/internal/ingest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	jobs []job.RawJob
	err  error
}

func (stubSource) Name() string { return "stub" }

func (s stubSource) Fetch(context.Context) ([]job.RawJob, error) { return s.jobs, s.err }

func expectColumns(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT column_name FROM information_schema.columns`).
		WithArgs("job_listings").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("id").AddRow("external_id").AddRow("title").AddRow("skills_required").AddRow("posted_date"))
}

func TestListingSeeder_SeedsEmptyTable(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	expectColumns(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_listings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO job_listings`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO job_listings`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	src := stubSource{jobs: []job.RawJob{
		{ExternalID: "s1", Title: "Go Dev", Company: "Acme", Source: "stub"},
		{Title: "  ", Company: "skipped"},
		{ExternalID: "s2", Title: "SRE", Company: "Beta", Source: "stub"},
	}}
	s := ListingSeeder{Sources: []ingest.Source{src}}
	require.NoError(t, s.Run(context.Background(), postgres.NewSQLDB(sqlDB)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingSeeder_SkipsPopulatedTable(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	expectColumns(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_listings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	s := ListingSeeder{Sources: []ingest.Source{stubSource{err: errors.New("must not fetch")}}}
	require.NoError(t, s.Run(context.Background(), postgres.NewSQLDB(sqlDB)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingSeeder_SchemaMismatch(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT column_name FROM information_schema.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id"))

	err = ListingSeeder{Sources: []ingest.Source{stubSource{}}}.Run(context.Background(), postgres.NewSQLDB(sqlDB))
	assert.ErrorContains(t, err, "schema mismatch")
	assert.ErrorContains(t, err, "external_id, title, skills_required, posted_date")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingSeeder_FetchErrorNamesSource(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	expectColumns(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_listings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	s := ListingSeeder{Sources: []ingest.Source{stubSource{err: errors.New("feed down")}}}
	err = s.Run(context.Background(), postgres.NewSQLDB(sqlDB))
	assert.ErrorContains(t, err, "fetch stub: feed down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingSeeder_Preconditions(t *testing.T) {
	assert.ErrorContains(t, NewListingSeeder(nil).Run(context.Background(), nil), "nil db")

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.ErrorContains(t, ListingSeeder{}.Run(context.Background(), postgres.NewSQLDB(sqlDB)), "no sources")
}
