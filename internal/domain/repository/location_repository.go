package repository

import (
	"context"

	"github.com/sea-companion/internal/domain"
)

// LocationRepository хранит последний GPS фикс, полученный от устройства
type LocationRepository interface {
	// Current возвращает последний фикс. Если фикса ещё не было - (nil, nil).
	Current(ctx context.Context) (*domain.LocationReading, error)

	// Update заменяет последний фикс
	Update(ctx context.Context, reading domain.LocationReading) error
}
