package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/infrastructure/cache"
	"jobradar/internal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisFromClient(client, time.Minute, logger.NewTestLogger(t)), mr
}

func sampleListing(title string) job.Listing {
	return job.Listing{
		ID: uuid.New(),
		Record: job.Record{
			ExternalID:      "ext_" + title,
			Title:           title,
			Company:         "Acme",
			ExperienceLevel: job.ExperienceSenior,
			RemoteType:      job.RemoteFully,
			Skills:          []string{"go", "sql"},
			SalaryMax:       salary(150000),
		},
	}
}

func TestJobSearch_Validation(t *testing.T) {
	uc := NewJobSearchUsecase(&fakeListings{}, nil, time.Minute, nil)

	tests := []struct {
		name   string
		params JobSearchParams
		field  string
	}{
		{name: "negative limit", params: JobSearchParams{Limit: -1}, field: "limit"},
		{name: "limit too large", params: JobSearchParams{Limit: 101}, field: "limit"},
		{name: "negative offset", params: JobSearchParams{Offset: -5}, field: "offset"},
		{name: "negative salary", params: JobSearchParams{SalaryMin: salary(-1)}, field: "salary_min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Search(context.Background(), tt.params)
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestJobSearch_DefaultsAndNormalizes(t *testing.T) {
	repo := &fakeListings{results: []job.Listing{sampleListing("Go Engineer")}}
	uc := NewJobSearchUsecase(repo, nil, time.Minute, nil)

	items, err := uc.Search(context.Background(), JobSearchParams{
		Keyword:         "  golang ",
		ExperienceLevel: "SENIOR",
		RemoteType:      " Fully-Remote",
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, job.SearchFilter{
		Keyword:         "golang",
		ExperienceLevel: "senior",
		RemoteType:      "fully-remote",
		Limit:           20,
	}, repo.lastFilter)
}

func TestJobSearch_CachesResults(t *testing.T) {
	c, _ := newTestCache(t)
	repo := &fakeListings{results: []job.Listing{sampleListing("Go Engineer")}}
	uc := NewJobSearchUsecase(repo, c, time.Minute, logger.NewTestLogger(t))

	params := JobSearchParams{Keyword: "go", Limit: 10}
	first, err := uc.Search(context.Background(), params)
	require.NoError(t, err)
	second, err := uc.Search(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.searchCalls)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Record.Skills, second[0].Record.Skills)

	ok, err := c.SetIfNotExists(context.Background(), JobsSearchLockKey(JobsSearchCacheKey(JobSearchParams{Keyword: "go", Limit: 10})), "1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "lock must be released after the fill")
}

func TestJobSearch_WaitsForConcurrentFill(t *testing.T) {
	c, _ := newTestCache(t)
	repo := &fakeListings{}
	uc := NewJobSearchUsecase(repo, c, time.Minute, nil)

	params := JobSearchParams{Keyword: "rust", Limit: 20}
	key := JobsSearchCacheKey(params)
	_, err := c.SetIfNotExists(context.Background(), JobsSearchLockKey(key), "1", time.Minute)
	require.NoError(t, err)

	filled := []job.Listing{sampleListing("Rust Engineer")}
	uc.sleep = func(time.Duration) {
		require.NoError(t, c.SetJSON(context.Background(), key, filled, time.Minute))
	}

	items, err := uc.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rust Engineer", items[0].Record.Title)
	assert.Zero(t, repo.searchCalls)
}

func TestJobSearch_RepositoryError(t *testing.T) {
	uc := NewJobSearchUsecase(&fakeListings{err: errors.New("boom")}, nil, time.Minute, nil)
	_, err := uc.Search(context.Background(), JobSearchParams{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestJobSearch_GetJob(t *testing.T) {
	l := sampleListing("Data Engineer")
	repo := &fakeListings{byID: map[uuid.UUID]job.Listing{l.ID: l}}
	uc := NewJobSearchUsecase(repo, nil, time.Minute, nil)

	got, err := uc.GetJob(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, l, got)

	_, err = uc.GetJob(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = uc.GetJob(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJobsSearchCacheKey_StableAcrossEquivalentParams(t *testing.T) {
	a := JobsSearchCacheKey(JobSearchParams{Keyword: "go", Limit: 20})
	b := JobsSearchCacheKey(JobSearchParams{Keyword: "go", Limit: 20})
	c := JobsSearchCacheKey(JobSearchParams{Keyword: "go", Limit: 20, Offset: 20})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, cache.SearchPrefix)
	assert.Contains(t, JobsSearchLockKey(a), cache.LockPrefix)
}
