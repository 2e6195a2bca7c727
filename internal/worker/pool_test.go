package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/testing/leaktest"
)

type testJob struct {
	executed atomic.Int32
	err      error
	block    chan struct{}
}

func (j *testJob) Name() string { return "test" }

func (j *testJob) Process(ctx context.Context) error {
	if j.block != nil {
		select {
		case <-j.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	j.executed.Add(1)
	return j.err
}

func TestPool_RunsJobs(t *testing.T) {
	leaktest.VerifyNone(t)

	pool := NewPool(2, 4)
	pool.Start()
	defer pool.Stop()

	job := &testJob{}
	require.True(t, pool.TryEnqueue(job))
	require.True(t, pool.TryEnqueue(job))

	assert.Eventually(t, func() bool { return job.executed.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPool_FailingJobKeepsWorker(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	failing := &testJob{err: errors.New("boom")}
	ok := &testJob{}
	require.True(t, pool.TryEnqueue(failing))
	require.True(t, pool.TryEnqueue(ok))

	assert.Eventually(t, func() bool { return ok.executed.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPool_TryEnqueueFull(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	blocker := &testJob{block: make(chan struct{})}
	require.True(t, pool.TryEnqueue(blocker))
	// Wait for the worker to take it so the queue slot is free
	require.Eventually(t, func() bool { return len(pool.jobQueue) == 0 }, time.Second, 5*time.Millisecond)

	require.True(t, pool.TryEnqueue(&testJob{}))
	assert.False(t, pool.TryEnqueue(&testJob{}))

	// Stop cancels the blocked job
	pool.Stop()
	assert.False(t, pool.TryEnqueue(&testJob{}))
	assert.Zero(t, blocker.executed.Load())
}
