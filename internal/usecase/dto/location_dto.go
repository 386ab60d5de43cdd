package dto

import (
	"time"

	"github.com/sea-companion/internal/domain"
)

// LocationRequest - показание GPS от устройства. Timestamp в миллисекундах эпохи, если не задан - время приёма.
type LocationRequest struct {
	Lat       *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon       *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Accuracy  *float64 `json:"accuracy,omitempty" validate:"omitempty,min=0"`
	Timestamp *int64   `json:"timestamp,omitempty" validate:"omitempty,min=0"`
}

// LocationResponse - позиция, которой пользуется система сейчас
type LocationResponse struct {
	Position     domain.Position `json:"position"`
	Accuracy     *float64        `json:"accuracy,omitempty"`
	Timestamp    *time.Time      `json:"timestamp,omitempty"`
	UsedFallback bool            `json:"used_fallback"`
}

// PointRequest - координаты запроса
type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

// Position - координаты запроса как domain.Position. Вызывать после валидации.
func (r PointRequest) Position() domain.Position {
	return domain.Position{Lat: *r.Lat, Lon: *r.Lon}
}

// EvaluateBoundariesRequest - разовая оценка границ. Без координат используется текущая позиция.
type EvaluateBoundariesRequest struct {
	Lat         *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon         *float64 `json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
	ThresholdKm *float64 `json:"threshold_km,omitempty" validate:"omitempty,gt=0,max=500"`
}

// ZonesResponse - зоны каталога
type ZonesResponse struct {
	Zones []domain.Zone `json:"zones"`
	Count int           `json:"count"`
}

// ClassifyResponse - классификация позиции
type ClassifyResponse struct {
	Position       domain.Position           `json:"position"`
	Classification domain.ZoneClassification `json:"classification"`
	FishingAllowed bool                      `json:"fishing_allowed"`
}
