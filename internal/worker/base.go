package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrAlreadyStarted - воркер нельзя запустить повторно
var ErrAlreadyStarted = errors.New("worker already started")

// BaseWorker содержит общую логику для всех воркеров: сигнал остановки и ожидание выхода из цикла
type BaseWorker struct {
	name     string
	logger   *zap.Logger
	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

// NewBaseWorker создает новый BaseWorker
func NewBaseWorker(name string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// Run выполняет loop до остановки воркера или отмены ctx.
// Контекст, переданный в loop, отменяется при Stop.
func (w *BaseWorker) Run(ctx context.Context, loop func(ctx context.Context) error) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	defer close(w.doneChan)

	// Stop мог быть вызван до запуска
	if w.IsStopped() {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-w.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return loop(ctx)
}

// Stop останавливает воркер и ждёт выхода из цикла. Повторный вызов безопасен.
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})

	if w.started.Load() {
		<-w.doneChan
	}
	return nil
}

// IsStopped проверяет, остановлен ли воркер
func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Logger возвращает логгер
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
