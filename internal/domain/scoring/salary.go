package scoring

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"jobradar/internal/domain/job"
)

const (
	ModeBaseline = "baseline"
	ModeTrained  = "trained"

	defaultTrainingSalary = 100000
	minSalaryFloor        = 40000
	maxSalaryFloor        = 60000
	trainedMinRatio       = 0.85
	baselineMaxRatio      = 1.2
	baselineRemoteBonus   = 1.15
	baselineDefaultSalary = 80000
)

var baselineSalaryByExperience = map[string]float64{
	job.ExperienceEntry:  50000,
	job.ExperienceMid:    80000,
	job.ExperienceSenior: 120000,
	job.ExperienceLead:   150000,
}

// salaryModel is an immutable trained parameter snapshot.
type salaryModel struct {
	scaler    standardScaler
	regressor linearModel
	samples   int
	trainedAt time.Time
}

// SalaryEstimator predicts salary ranges. Estimates read the current snapshot
// through an atomic pointer; Train and Load publish a fresh snapshot and never
// mutate a published one.
type SalaryEstimator struct {
	store    ArtifactStore
	snapshot atomic.Pointer[salaryModel]
	trainMu  sync.Mutex
	now      func() time.Time
}

func NewSalaryEstimator(store ArtifactStore) *SalaryEstimator {
	return &SalaryEstimator{store: store, now: time.Now}
}

// Estimate returns (min, max). In baseline mode the pair is (base, base*1.2),
// so min is the table value and max sits above it.
func (e *SalaryEstimator) Estimate(r job.Record) (float64, float64) {
	m := e.snapshot.Load()
	if m == nil {
		return baselineSalary(r)
	}

	x := m.scaler.transform(ExtractFeatures(r))
	predictedMax := m.regressor.predict(x)
	predictedMin := predictedMax * trainedMinRatio

	return math.Max(minSalaryFloor, predictedMin), math.Max(maxSalaryFloor, predictedMax)
}

func baselineSalary(r job.Record) (float64, float64) {
	base, ok := baselineSalaryByExperience[r.ExperienceLevel]
	if !ok {
		base = baselineDefaultSalary
	}
	if r.RemoteType == job.RemoteFully {
		base *= baselineRemoteBonus
	}
	return base, base * baselineMaxRatio
}

func (e *SalaryEstimator) Mode() string {
	if e.snapshot.Load() == nil {
		return ModeBaseline
	}
	return ModeTrained
}

// TrainedAt is zero in baseline mode.
func (e *SalaryEstimator) TrainedAt() time.Time {
	m := e.snapshot.Load()
	if m == nil {
		return time.Time{}
	}
	return m.trainedAt
}

// Train fits the scaler and regressor over the corpus, labelled by each
// record's salary_max (100000 when missing), publishes the result and persists
// it. An empty corpus is a no-op.
func (e *SalaryEstimator) Train(ctx context.Context, corpus []job.Record) error {
	if len(corpus) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	rows := make([]Features, len(corpus))
	targets := make([]float64, len(corpus))
	for i, r := range corpus {
		rows[i] = ExtractFeatures(r)
		targets[i] = r.SalaryMaxOr(defaultTrainingSalary)
	}

	scaler := fitScaler(rows)
	scaled := make([]Features, len(rows))
	for i, r := range rows {
		scaled[i] = scaler.transform(r)
	}

	regressor, err := fitRidge(scaled, targets, ridgePenalty)
	if err != nil {
		return fmt.Errorf("train salary model: %w", err)
	}

	m := &salaryModel{
		scaler:    scaler,
		regressor: regressor,
		samples:   len(corpus),
		trainedAt: e.now().UTC(),
	}
	e.snapshot.Store(m)

	return e.save(m)
}

// Save persists the current snapshot. Baseline mode has nothing to save.
func (e *SalaryEstimator) Save() error {
	m := e.snapshot.Load()
	if m == nil {
		return nil
	}
	return e.save(m)
}

func (e *SalaryEstimator) save(m *salaryModel) error {
	if e.store == nil {
		return nil
	}
	model := ModelArtifact{
		Version:      artifactVersion,
		Features:     featureNames[:],
		Intercept:    m.regressor.Intercept,
		Coefficients: m.regressor.Coef[:],
		Samples:      m.samples,
		TrainedAt:    m.trainedAt,
	}
	scaler := ScalerArtifact{
		Mean:  m.scaler.Mean[:],
		Scale: m.scaler.Scale[:],
	}
	if err := e.store.Save(model, scaler); err != nil {
		return fmt.Errorf("save salary model: %w", err)
	}
	return nil
}

// Load replaces the snapshot with persisted artifacts. Missing artifacts leave
// the estimator untouched and are not an error.
func (e *SalaryEstimator) Load() error {
	if e.store == nil {
		return nil
	}
	model, scaler, ok, err := e.store.Load()
	if err != nil {
		return fmt.Errorf("load salary model: %w", err)
	}
	if !ok {
		return nil
	}

	m, err := snapshotFromArtifacts(model, scaler)
	if err != nil {
		return fmt.Errorf("load salary model: %w", err)
	}
	e.snapshot.Store(m)
	return nil
}

func snapshotFromArtifacts(model ModelArtifact, scaler ScalerArtifact) (*salaryModel, error) {
	if model.Version != artifactVersion {
		return nil, fmt.Errorf("unsupported artifact version %d", model.Version)
	}
	if len(model.Coefficients) != featureCount || len(scaler.Mean) != featureCount || len(scaler.Scale) != featureCount {
		return nil, fmt.Errorf("artifact shape mismatch: coef=%d mean=%d scale=%d",
			len(model.Coefficients), len(scaler.Mean), len(scaler.Scale))
	}

	m := &salaryModel{
		regressor: linearModel{Intercept: model.Intercept},
		samples:   model.Samples,
		trainedAt: model.TrainedAt,
	}
	copy(m.regressor.Coef[:], model.Coefficients)
	copy(m.scaler.Mean[:], scaler.Mean)
	copy(m.scaler.Scale[:], scaler.Scale)
	return m, nil
}
