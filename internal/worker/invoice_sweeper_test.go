package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

type fakeSweeper struct {
	calls atomic.Int32
	n     int
	err   error
	block chan struct{}
}

func (f *fakeSweeper) SweepOverdue(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.n, f.err
}

func TestNewInvoiceSweeper_RejectsBadSchedule(t *testing.T) {
	_, err := NewInvoiceSweeper(&fakeSweeper{}, "every tuesday", logger.Nop())
	require.Error(t, err)
}

func TestInvoiceSweeper_Sweep(t *testing.T) {
	s, err := NewInvoiceSweeper(&fakeSweeper{n: 3}, "@hourly", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, s.Sweep(context.Background()))
}

func TestInvoiceSweeper_FailureIsSwallowed(t *testing.T) {
	fake := &fakeSweeper{err: errors.New("database is locked")}
	s, err := NewInvoiceSweeper(fake, "*/5 * * * *", logger.Nop())
	require.NoError(t, err)

	assert.Zero(t, s.Sweep(context.Background()))
	assert.Zero(t, s.Sweep(context.Background()))
	assert.Equal(t, int32(2), fake.calls.Load())
}

func TestInvoiceSweeper_SkipsOverlappingRuns(t *testing.T) {
	fake := &fakeSweeper{n: 1, block: make(chan struct{})}
	s, err := NewInvoiceSweeper(fake, "@hourly", logger.Nop())
	require.NoError(t, err)

	done := make(chan int)
	go func() { done <- s.Sweep(context.Background()) }()
	require.Eventually(t, func() bool { return fake.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	assert.Zero(t, s.Sweep(context.Background()))
	close(fake.block)
	assert.Equal(t, 1, <-done)
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestInvoiceSweeper_StartStopsWithContext(t *testing.T) {
	fake := &fakeSweeper{}
	s, err := NewInvoiceSweeper(fake, "@hourly", logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return fake.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
