package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/worker"
)

// blockingWorker работает, пока его не остановят
type blockingWorker struct {
	*worker.BaseWorker
	running chan struct{}
	stopped chan struct{}
}

func newBlockingWorker(name string) *blockingWorker {
	return &blockingWorker{
		BaseWorker: worker.NewBaseWorker(name, zap.NewNop()),
		running:    make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	return w.Run(ctx, func(ctx context.Context) error {
		close(w.running)
		<-ctx.Done()
		close(w.stopped)
		return nil
	})
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	a, b := newBlockingWorker("a"), newBlockingWorker("b")
	m.Register(a)
	m.Register(b)

	assert.Equal(t, []string{"a", "b"}, m.Names())
	require.NoError(t, m.Start(context.Background()))
	<-a.running
	<-b.running

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))

	for _, w := range []*blockingWorker{a, b} {
		select {
		case <-w.stopped:
		default:
			t.Fatalf("worker %s still running", w.Name())
		}
		assert.True(t, w.IsStopped())
	}
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestBaseWorker_RunTwice(t *testing.T) {
	w := newBlockingWorker("once")

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	<-w.running
	assert.ErrorIs(t, w.Start(context.Background()), worker.ErrAlreadyStarted)

	require.NoError(t, w.Stop())
	require.NoError(t, <-done)
}
