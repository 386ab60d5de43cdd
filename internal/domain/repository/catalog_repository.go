package repository

import (
	"context"

	"github.com/sea-companion/internal/domain"
)

// CatalogRepository - источник статического каталога зон и морских границ
type CatalogRepository interface {
	// Zones возвращает регуляторные зоны в порядке каталога
	Zones(ctx context.Context) ([]domain.Zone, error)

	// Boundaries возвращает морские границы в порядке каталога
	Boundaries(ctx context.Context) ([]domain.Boundary, error)
}
