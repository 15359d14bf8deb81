// Package scheduler runs periodic maintenance jobs (data refresh, model
// retraining) on cron specs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobradar/internal/logger"

	"github.com/robfig/cron/v3"
)

// Job is one periodic task. Each run gets its own context bounded by Timeout.
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger

	mu     sync.Mutex
	jobs   map[string]Job
	ctx    context.Context
	cancel context.CancelFunc
}

func New(log logger.Logger) *Scheduler {
	log = logger.OrNop(log)
	cl := cronLogger{log: log}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:    log,
		jobs:   make(map[string]Job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers j. Jobs with an empty spec are skipped.
func (s *Scheduler) Add(j Job) error {
	if j.Run == nil {
		return fmt.Errorf("job %q: nil run func", j.Name)
	}
	if j.Spec == "" {
		s.log.Info("scheduler job disabled", map[string]interface{}{"job": j.Name})
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.Name]; ok {
		return fmt.Errorf("job %q already registered", j.Name)
	}

	if _, err := s.cron.AddFunc(j.Spec, func() { _ = s.execute(s.ctx, j) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", j.Name, err)
	}
	s.jobs[j.Name] = j
	s.log.Info("scheduler job registered", map[string]interface{}{
		"job":  j.Name,
		"spec": j.Spec,
	})
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", map[string]interface{}{"jobs": len(s.cron.Entries())})
}

// Stop prevents new runs, cancels running ones and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped", nil)
}

// RunNow executes a registered job synchronously outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %q not registered", name)
	}
	return s.execute(ctx, j)
}

func (s *Scheduler) execute(ctx context.Context, j Job) error {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := j.Run(ctx)
	fields := map[string]interface{}{
		"job":         j.Name,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		s.log.Error("scheduled job failed", fields)
		return err
	}
	s.log.Info("scheduled job finished", fields)
	return nil
}

type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, kvFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	f := kvFields(keysAndValues)
	f["error"] = err
	l.log.Error("cron: "+msg, f)
}

func kvFields(kv []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			k = fmt.Sprint(kv[i])
		}
		out[k] = kv[i+1]
	}
	return out
}
