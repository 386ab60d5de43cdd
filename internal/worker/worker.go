package worker

import (
	"context"
)

// Worker - фоновая задача процесса (мониторинг границ, приём подтверждений синхронизации)
type Worker interface {
	// Start блокирует до остановки воркера
	Start(ctx context.Context) error

	// Stop останавливает воркер и возвращается после выхода из цикла
	Stop() error

	Name() string
}
