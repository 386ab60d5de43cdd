package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/route"
	"github.com/sea-companion/internal/usecase/dto"
)

// DefaultTripName - имя плана, если пользователь его не ввёл
const DefaultTripName = "Trip"

// TripUseCase - планирование выходов в море
type TripUseCase struct {
	store  *RecordStore
	origin domain.Position
	logger *zap.Logger
}

// NewTripUseCase создает новый экземпляр TripUseCase. origin - точка старта,
// когда нет ни явного старта, ни пригодных точек маршрута.
func NewTripUseCase(store *RecordStore, origin domain.Position, logger *zap.Logger) *TripUseCase {
	return &TripUseCase{
		store:  store,
		origin: origin,
		logger: logger,
	}
}

// List возвращает планы, самые новые первыми
func (uc *TripUseCase) List(ctx context.Context) []domain.TripPlan {
	return uc.store.Trips(ctx)
}

// Plan сохраняет план с уже посчитанным порядком обхода
func (uc *TripUseCase) Plan(ctx context.Context, req dto.PlanTripRequest) (*domain.TripPlan, error) {
	optimized := uc.optimize(req.Start, req.Waypoints)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultTripName
	}

	plan := domain.TripPlan{
		ID:             uuid.NewString(),
		Name:           name,
		Waypoints:      optimized.Waypoints,
		OptimizedOrder: optimized.Order,
		CreatedAt:      domain.NowMillis(),
		SyncStatus:     domain.SyncPending,
	}

	if err := uc.store.AppendTrip(ctx, plan); err != nil {
		return nil, err
	}

	uc.logger.Info("Trip planned",
		zap.String("id", plan.ID),
		zap.Int("waypoints", len(plan.Waypoints)),
		zap.Float64("distance_km", optimized.TotalDistanceKm))
	return &plan, nil
}

// Optimize считает порядок обхода без сохранения
func (uc *TripUseCase) Optimize(req dto.OptimizeRouteRequest) *dto.OptimizeRouteResponse {
	return uc.optimize(req.Start, req.Waypoints)
}

// Clear удаляет все планы
func (uc *TripUseCase) Clear(ctx context.Context) error {
	return uc.store.Clear(ctx, domain.CollectionTrips)
}

func (uc *TripUseCase) optimize(start *dto.PointInput, inputs []dto.WaypointInput) *dto.OptimizeRouteResponse {
	waypoints := make([]domain.Waypoint, 0, len(inputs))
	for i, in := range inputs {
		p := dto.PointInput{Lat: in.Lat, Lon: in.Lon}
		if !p.Usable() {
			uc.logger.Warn("Waypoint dropped",
				zap.Int("index", i),
				zap.String("label", in.Label))
			continue
		}
		waypoints = append(waypoints, domain.Waypoint{
			Lat:   in.Lat.Value,
			Lon:   in.Lon.Value,
			Label: strings.TrimSpace(in.Label),
		})
	}

	origin := uc.startPosition(start, waypoints)

	points := make([]domain.Position, len(waypoints))
	for i, w := range waypoints {
		points[i] = w.Position()
	}

	order := route.OptimizeOrder(origin, points)

	ordered := make([]domain.Waypoint, len(order))
	for i, idx := range order {
		ordered[i] = waypoints[idx]
	}

	return &dto.OptimizeRouteResponse{
		Start:           origin,
		Waypoints:       waypoints,
		Order:           order,
		Ordered:         ordered,
		TotalDistanceKm: route.PathLengthKm(origin, points, order),
		Dropped:         len(inputs) - len(waypoints),
	}
}

// startPosition: явный старт, затем первая пригодная точка, затем точка по умолчанию
func (uc *TripUseCase) startPosition(start *dto.PointInput, waypoints []domain.Waypoint) domain.Position {
	if start != nil && start.Usable() {
		return domain.Position{Lat: start.Lat.Value, Lon: start.Lon.Value}
	}
	if len(waypoints) > 0 {
		return waypoints[0].Position()
	}
	return uc.origin
}
