package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobradar/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Add(t *testing.T) {
	noop := func(context.Context) error { return nil }

	tests := []struct {
		name    string
		job     Job
		wantErr string
	}{
		{name: "valid", job: Job{Name: "refresh", Spec: "@every 6h", Run: noop}},
		{name: "cron expression", job: Job{Name: "nightly", Spec: "0 3 * * *", Run: noop}},
		{name: "disabled", job: Job{Name: "off", Spec: "", Run: noop}},
		{name: "bad spec", job: Job{Name: "bad", Spec: "every tuesday", Run: noop}, wantErr: "cron.AddFunc"},
		{name: "nil func", job: Job{Name: "nil", Spec: "@every 1h"}, wantErr: "nil run func"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(logger.NewTestLogger(t))
			err := s.Add(tt.job)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestScheduler_DuplicateName(t *testing.T) {
	s := New(nil)
	j := Job{Name: "refresh", Spec: "@every 1h", Run: func(context.Context) error { return nil }}
	require.NoError(t, s.Add(j))
	assert.ErrorContains(t, s.Add(j), "already registered")
}

func TestScheduler_RunNowAppliesTimeout(t *testing.T) {
	s := New(logger.NewTestLogger(t))
	require.NoError(t, s.Add(Job{
		Name:    "retrain",
		Spec:    "@every 24h",
		Timeout: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}))

	err := s.RunNow(context.Background(), "retrain")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.ErrorContains(t, s.RunNow(context.Background(), "missing"), "not registered")
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := New(nil)
	started := make(chan struct{})
	done := make(chan error, 1)
	require.NoError(t, s.Add(Job{
		Name: "refresh",
		Spec: "@every 1h",
		Run: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return errors.New("stopped")
		},
	}))
	s.Start()

	go func() { done <- s.RunNow(s.ctx, "refresh") }()
	<-started
	s.Stop()

	select {
	case err := <-done:
		assert.EqualError(t, err, "stopped")
	case <-time.After(2 * time.Second):
		t.Fatal("job did not observe cancellation")
	}
}

func TestKVFields(t *testing.T) {
	f := kvFields([]interface{}{"entry", 1, "next", "soon", "dangling"})
	assert.Equal(t, map[string]interface{}{"entry": 1, "next": "soon"}, f)
}
