package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/pkg/validator"
	"github.com/sea-companion/internal/usecase/dto"
	"github.com/sea-companion/internal/zone"
)

// LoadCatalog читает зоны и границы один раз при старте
func LoadCatalog(ctx context.Context, repo repository.CatalogRepository, logger *zap.Logger) (*zone.Catalog, error) {
	zones, err := repo.Zones(ctx)
	if err != nil {
		return nil, errors.ErrInvalidCatalog.Wrap(fmt.Errorf("zones: %w", err))
	}

	boundaries, err := repo.Boundaries(ctx)
	if err != nil {
		return nil, errors.ErrInvalidCatalog.Wrap(fmt.Errorf("boundaries: %w", err))
	}

	catalog := zone.NewCatalog(zones, boundaries)
	logger.Info("Catalog loaded",
		zap.Int("zones", len(zones)),
		zap.Int("active_zones", len(catalog.ActiveZones())),
		zap.Int("boundaries", len(boundaries)))
	return catalog, nil
}

// ZoneUseCase - классификация позиции по регуляторным зонам
type ZoneUseCase struct {
	catalog   *zone.Catalog
	locations *LocationUseCase
	logger    *zap.Logger
}

// NewZoneUseCase создает новый экземпляр ZoneUseCase
func NewZoneUseCase(catalog *zone.Catalog, locations *LocationUseCase, logger *zap.Logger) *ZoneUseCase {
	return &ZoneUseCase{
		catalog:   catalog,
		locations: locations,
		logger:    logger,
	}
}

// Zones - весь каталог зон
func (uc *ZoneUseCase) Zones() *dto.ZonesResponse {
	zones := uc.catalog.Zones()
	return &dto.ZonesResponse{Zones: zones, Count: len(zones)}
}

// ActiveZones - зоны, где рыбалка разрешена
func (uc *ZoneUseCase) ActiveZones() *dto.ZonesResponse {
	zones := uc.catalog.ActiveZones()
	return &dto.ZonesResponse{Zones: zones, Count: len(zones)}
}

// Classify классифицирует точку запроса, без координат - текущую позицию
func (uc *ZoneUseCase) Classify(ctx context.Context, req *dto.PointRequest) (*dto.ClassifyResponse, error) {
	var p domain.Position
	if req == nil || (req.Lat == nil && req.Lon == nil) {
		p, _ = uc.locations.Resolve(ctx)
	} else {
		if err := validator.Validate(req); err != nil {
			return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"error": err.Error(),
			})
		}
		p = req.Position()
	}

	c := uc.catalog.Classify(p)
	return &dto.ClassifyResponse{
		Position:       p,
		Classification: c,
		FishingAllowed: c.Classification == domain.ClassificationOpen,
	}, nil
}

// BoundaryUseCase - оценка близости к морским границам
type BoundaryUseCase struct {
	catalog     *zone.Catalog
	locations   *LocationUseCase
	thresholdKm float64
	logger      *zap.Logger
}

// NewBoundaryUseCase создает новый экземпляр BoundaryUseCase
func NewBoundaryUseCase(catalog *zone.Catalog, locations *LocationUseCase, thresholdKm float64, logger *zap.Logger) *BoundaryUseCase {
	return &BoundaryUseCase{
		catalog:     catalog,
		locations:   locations,
		thresholdKm: thresholdKm,
		logger:      logger,
	}
}

// Boundaries - весь каталог границ
func (uc *BoundaryUseCase) Boundaries() []domain.Boundary {
	return uc.catalog.Boundaries()
}

// ThresholdKm - порог нарушения по умолчанию
func (uc *BoundaryUseCase) ThresholdKm() float64 {
	return uc.thresholdKm
}

// EvaluateCurrent оценивает текущую позицию. Без фикса используется точка по умолчанию,
// ошибка LocationUnavailable наружу не выходит.
func (uc *BoundaryUseCase) EvaluateCurrent(ctx context.Context) domain.BoundaryStatus {
	p, fallback := uc.locations.Resolve(ctx)
	status := uc.catalog.EvaluateBoundaries(p, uc.thresholdKm)
	status.UsedFallback = fallback
	status.EvaluatedAt = uc.locations.now()
	return status
}

// Evaluate - разовая оценка по запросу
func (uc *BoundaryUseCase) Evaluate(ctx context.Context, req dto.EvaluateBoundariesRequest) (*domain.BoundaryStatus, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"error": err.Error(),
		})
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"error": "lat and lon must be given together",
		})
	}

	threshold := uc.thresholdKm
	if req.ThresholdKm != nil {
		threshold = *req.ThresholdKm
	}

	var status domain.BoundaryStatus
	if req.Lat == nil {
		p, fallback := uc.locations.Resolve(ctx)
		status = uc.catalog.EvaluateBoundaries(p, threshold)
		status.UsedFallback = fallback
	} else {
		status = uc.catalog.EvaluateBoundaries(domain.Position{Lat: *req.Lat, Lon: *req.Lon}, threshold)
	}
	status.EvaluatedAt = uc.locations.now()

	return &status, nil
}
