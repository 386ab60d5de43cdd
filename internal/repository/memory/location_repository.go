// Package memory - репозитории, живущие только в памяти процесса
package memory

import (
	"context"
	"sync"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
)

type locationRepository struct {
	mu      sync.RWMutex
	current *domain.LocationReading
}

// NewLocationRepository - последний фикс от устройства. После рестарта фикса нет,
// пока устройство не пришлёт новый.
func NewLocationRepository() repository.LocationRepository {
	return &locationRepository{}
}

func (r *locationRepository) Current(ctx context.Context) (*domain.LocationReading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return nil, nil
	}
	reading := *r.current
	return &reading, nil
}

func (r *locationRepository) Update(ctx context.Context, reading domain.LocationReading) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.current = &reading
	r.mu.Unlock()
	return nil
}
