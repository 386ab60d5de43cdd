package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/pkg/validator"
)

type catalogRepository struct {
	zonesFile      string
	boundariesFile string
	logger         *zap.Logger
}

// NewCatalogRepository читает каталог из JSONC файлов (комментарии и висячие запятые допустимы).
// Пустой путь означает пустой каталог.
func NewCatalogRepository(zonesFile, boundariesFile string, logger *zap.Logger) repository.CatalogRepository {
	return &catalogRepository{
		zonesFile:      zonesFile,
		boundariesFile: boundariesFile,
		logger:         logger,
	}
}

func (r *catalogRepository) Zones(ctx context.Context) ([]domain.Zone, error) {
	var zones []domain.Zone
	if err := r.load(ctx, r.zonesFile, &zones); err != nil {
		return nil, err
	}

	for i := range zones {
		if err := validateShape(zones[i], zones[i].Coordinates); err != nil {
			return nil, fmt.Errorf("zone #%d (%s): %w", i, zones[i].ID, err)
		}
	}

	r.logger.Info("Zones loaded", zap.String("file", r.zonesFile), zap.Int("count", len(zones)))
	return zones, nil
}

func (r *catalogRepository) Boundaries(ctx context.Context) ([]domain.Boundary, error) {
	var boundaries []domain.Boundary
	if err := r.load(ctx, r.boundariesFile, &boundaries); err != nil {
		return nil, err
	}

	for i := range boundaries {
		if err := validateShape(boundaries[i], boundaries[i].Coordinates); err != nil {
			return nil, fmt.Errorf("boundary #%d (%s): %w", i, boundaries[i].ID, err)
		}
	}

	r.logger.Info("Boundaries loaded", zap.String("file", r.boundariesFile), zap.Int("count", len(boundaries)))
	return boundaries, nil
}

func (r *catalogRepository) load(ctx context.Context, path string, dst interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	if err := json.Unmarshal(standardized, dst); err != nil {
		return fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	return nil
}

// validateShape - теги структуры и диапазоны координат каждой вершины
func validateShape(shape interface{}, coords []domain.Position) error {
	if err := validator.Validate(shape); err != nil {
		return err
	}
	for i, c := range coords {
		if !utils.ValidateCoordinates(c.Lat, c.Lon) {
			return fmt.Errorf("vertex #%d: coordinates out of range (%v, %v)", i, c.Lat, c.Lon)
		}
	}
	return nil
}
