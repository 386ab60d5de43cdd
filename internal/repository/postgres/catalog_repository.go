package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/pkg/validator"
)

// Таблицы каталога
const (
	zonesTable      = "catalog_zones"
	boundariesTable = "catalog_boundaries"
)

// shapeRow - строка каталога, вершины хранятся jsonb массивом {lat, lon}
type shapeRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Kind        string `db:"kind"`
	Season      string `db:"season"`
	Coordinates []byte `db:"coordinates"`
}

type catalogRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCatalogRepository - каталог зон и границ из PostgreSQL, порядок задаётся колонкой position
func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *catalogRepository) Zones(ctx context.Context) ([]domain.Zone, error) {
	rows, err := r.selectShapes(ctx, zonesTable)
	if err != nil {
		return nil, err
	}

	zones := make([]domain.Zone, 0, len(rows))
	for _, row := range rows {
		z := domain.Zone{
			ID:     row.ID,
			Name:   row.Name,
			Kind:   domain.ZoneKind(row.Kind),
			Season: domain.Season(row.Season),
		}
		if err := json.Unmarshal(row.Coordinates, &z.Coordinates); err != nil {
			return nil, fmt.Errorf("zone %s: decode coordinates: %w", row.ID, err)
		}
		if err := validator.Validate(z); err != nil {
			return nil, fmt.Errorf("zone %s: %w", row.ID, err)
		}
		zones = append(zones, z)
	}

	r.logger.Info("Zones loaded from database", zap.Int("count", len(zones)))
	return zones, nil
}

func (r *catalogRepository) Boundaries(ctx context.Context) ([]domain.Boundary, error) {
	rows, err := r.selectShapes(ctx, boundariesTable)
	if err != nil {
		return nil, err
	}

	boundaries := make([]domain.Boundary, 0, len(rows))
	for _, row := range rows {
		b := domain.Boundary{
			ID:     row.ID,
			Name:   row.Name,
			Kind:   domain.ZoneKind(row.Kind),
			Season: domain.Season(row.Season),
		}
		if err := json.Unmarshal(row.Coordinates, &b.Coordinates); err != nil {
			return nil, fmt.Errorf("boundary %s: decode coordinates: %w", row.ID, err)
		}
		if err := validator.Validate(b); err != nil {
			return nil, fmt.Errorf("boundary %s: %w", row.ID, err)
		}
		boundaries = append(boundaries, b)
	}

	r.logger.Info("Boundaries loaded from database", zap.Int("count", len(boundaries)))
	return boundaries, nil
}

func (r *catalogRepository) selectShapes(ctx context.Context, table string) ([]shapeRow, error) {
	query := fmt.Sprintf(`
		SELECT id, COALESCE(name, '') AS name, kind, season, coordinates
		FROM %s
		ORDER BY position, id
	`, table)

	var rows []shapeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to load catalog", zap.String("table", table), zap.Error(err))
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	return rows, nil
}
