package dto

import "github.com/sea-companion/internal/domain"

// CreateCatchRequest - запись улова из формы журнала
type CreateCatchRequest struct {
	Species  string     `json:"species"`
	WeightKg FormNumber `json:"weightKg"`
	Quantity FormNumber `json:"quantity"`
}

// WaypointInput - точка маршрута из формы планировщика
type WaypointInput struct {
	Lat   FormNumber `json:"lat"`
	Lon   FormNumber `json:"lon"`
	Label string     `json:"label,omitempty"`
}

// PlanTripRequest - создание плана выхода
type PlanTripRequest struct {
	Name      string          `json:"name"`
	Waypoints []WaypointInput `json:"waypoints"`
	Start     *PointInput     `json:"start,omitempty"`
}

// OptimizeRouteRequest - оптимизация порядка точек без сохранения
type OptimizeRouteRequest struct {
	Waypoints []WaypointInput `json:"waypoints"`
	Start     *PointInput     `json:"start,omitempty"`
}

// OptimizeRouteResponse - порядок обхода и длина пути
type OptimizeRouteResponse struct {
	Start           domain.Position   `json:"start"`
	Waypoints       []domain.Waypoint `json:"waypoints"`
	Order           []int             `json:"order"`
	Ordered         []domain.Waypoint `json:"ordered"`
	TotalDistanceKm float64           `json:"total_distance_km"`
	Dropped         int               `json:"dropped"`
}

// CreateAlertRequest - ручное создание уведомления
type CreateAlertRequest struct {
	Type     string `json:"type" validate:"required,max=64"`
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"max=2000"`
	Severity string `json:"severity" validate:"omitempty,oneof=info warning danger"`
}

// UpdateSettingsRequest - частичное обновление настроек
type UpdateSettingsRequest struct {
	LowPowerMode   *bool `json:"lowPowerMode,omitempty"`
	GPSPollSeconds *int  `json:"gpsPollSeconds,omitempty" validate:"omitempty,min=30,max=300"`
}

// ClearCacheResponse - какие коллекции очищены
type ClearCacheResponse struct {
	Cleared []domain.Collection `json:"cleared"`
}
