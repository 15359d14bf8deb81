package ingest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(3, 10)
	results := pool.Run(context.Background())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		name := "ok"
		var err error
		if i%5 == 0 {
			name, err = "bad", errors.New("fail")
		}
		pool.Submit(name, func(context.Context) error {
			ran.Add(1)
			return err
		})
	}
	pool.Close()

	failed := 0
	total := 0
	for r := range results {
		total++
		if r.Err != nil {
			failed++
			assert.Equal(t, "bad", r.Name)
		}
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 2, failed)
	assert.Equal(t, int32(10), ran.Load())
}

func TestWorkerPool_NilSafe(t *testing.T) {
	var p *WorkerPool
	p.Submit("x", func(context.Context) error { return nil })
	p.SetRateLimit(5)
	p.Close()
	_, ok := <-p.Run(context.Background())
	assert.False(t, ok)
}
