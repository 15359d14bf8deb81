package usecase

import (
	"context"
	"sync"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/domain/scoring"
	"jobradar/internal/repository"

	"github.com/google/uuid"
)

type fakeListings struct {
	mu sync.Mutex

	byID     map[uuid.UUID]job.Listing
	results  []job.Listing
	records  []job.Record
	stats    job.Statistics
	err      error
	upserted []job.Record

	searchCalls int
	lastFilter  job.SearchFilter
}

func (f *fakeListings) UpsertMany(_ context.Context, records []job.Record) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.upserted = append(f.upserted, records...)
	return len(records), nil
}

func (f *fakeListings) GetByID(_ context.Context, id uuid.UUID) (job.Listing, error) {
	if f.err != nil {
		return job.Listing{}, f.err
	}
	l, ok := f.byID[id]
	if !ok {
		return job.Listing{}, repository.ErrJobNotFound
	}
	return l, nil
}

func (f *fakeListings) Search(_ context.Context, filter job.SearchFilter) ([]job.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeListings) ListRecords(context.Context, int) ([]job.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeListings) Statistics(context.Context) (job.Statistics, error) {
	if f.err != nil {
		return job.Statistics{}, f.err
	}
	return f.stats, nil
}

type fakeSkillStats struct {
	top      []job.SkillStat
	err      error
	replaced []job.SkillStat
}

func (f *fakeSkillStats) ReplaceAll(_ context.Context, stats []job.SkillStat) error {
	if f.err != nil {
		return f.err
	}
	f.replaced = stats
	return nil
}

func (f *fakeSkillStats) Top(context.Context, int) ([]job.SkillStat, error) {
	return f.top, f.err
}

type fakePreferences struct {
	stored map[string]job.StoredPreference
	err    error
	saved  *job.StoredPreference
}

func (f *fakePreferences) Get(_ context.Context, userID string) (job.StoredPreference, error) {
	if f.err != nil {
		return job.StoredPreference{}, f.err
	}
	p, ok := f.stored[userID]
	if !ok {
		return job.StoredPreference{}, repository.ErrPreferenceNotFound
	}
	return p, nil
}

func (f *fakePreferences) Upsert(_ context.Context, p job.StoredPreference) (job.StoredPreference, error) {
	if f.err != nil {
		return job.StoredPreference{}, f.err
	}
	f.saved = &p
	return p, nil
}

type fakeEstimator struct {
	lo, hi    float64
	mode      string
	trainedAt time.Time
	trainErr  error
	trained   int
}

func (f *fakeEstimator) Estimate(job.Record) (float64, float64) { return f.lo, f.hi }
func (f *fakeEstimator) Mode() string                           { return f.mode }
func (f *fakeEstimator) TrainedAt() time.Time                   { return f.trainedAt }

func (f *fakeEstimator) Train(_ context.Context, corpus []job.Record) error {
	if f.trainErr != nil {
		return f.trainErr
	}
	f.trained = len(corpus)
	f.mode = scoring.ModeTrained
	f.trainedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return nil
}

type publishedEvent struct {
	name string
	data any
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) Publish(event string, data any) {
	f.events = append(f.events, publishedEvent{name: event, data: data})
}

func salary(v float64) *float64 { return &v }
