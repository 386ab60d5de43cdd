package domain

import "encoding/json"

// CatchLog - запись улова. После создания меняется только SyncStatus.
type CatchLog struct {
	ID         string    `json:"id"`
	Species    string    `json:"species"`
	WeightKg   *float64  `json:"weightKg,omitempty"`
	Quantity   *int      `json:"quantity,omitempty"`
	Timestamp  int64     `json:"timestamp"`
	SyncStatus SyncState `json:"syncStatus"`
}

// Waypoint - точка маршрута, заданная пользователем
type Waypoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// Position возвращает координаты точки маршрута
func (w Waypoint) Position() Position {
	return Position{Lat: w.Lat, Lon: w.Lon}
}

// TripPlan - план выхода в море. OptimizedOrder - перестановка индексов Waypoints.
type TripPlan struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Waypoints      []Waypoint `json:"waypoints"`
	OptimizedOrder []int      `json:"optimizedOrder"`
	CreatedAt      int64      `json:"createdAt"`
	SyncStatus     SyncState  `json:"syncStatus"`
}

// HasValidOrder проверяет, что OptimizedOrder - перестановка 0..len(Waypoints)-1
func (t TripPlan) HasValidOrder() bool {
	if len(t.OptimizedOrder) != len(t.Waypoints) {
		return false
	}
	seen := make([]bool, len(t.Waypoints))
	for _, idx := range t.OptimizedOrder {
		if idx < 0 || idx >= len(seen) || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// Severity - уровень важности уведомления
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityDanger:
		return true
	}
	return false
}

// AlertItem - уведомление. После создания меняется только Read.
type AlertItem struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Timestamp int64    `json:"timestamp"`
	Read      bool     `json:"read"`
}

// Alert types
const (
	AlertTypeSeasonalBan = "seasonal_ban"
	AlertTypeBoundary    = "boundary"
	AlertTypeSync        = "sync"
)

// GPS poll bounds
const (
	MinGPSPollSeconds = 30
	MaxGPSPollSeconds = 300
)

// AppSettings - настройки приложения, синглтон
type AppSettings struct {
	LowPowerMode   bool `json:"lowPowerMode"`
	GPSPollSeconds int  `json:"gpsPollSeconds" validate:"min=30,max=300"`
}

// DefaultSettings - настройки, которые читаются при пустом или битом хранилище
func DefaultSettings() AppSettings {
	return AppSettings{LowPowerMode: true, GPSPollSeconds: 60}
}

// Normalize приводит GPSPollSeconds в допустимый диапазон
func (s AppSettings) Normalize() AppSettings {
	if s.GPSPollSeconds < MinGPSPollSeconds {
		s.GPSPollSeconds = MinGPSPollSeconds
	}
	if s.GPSPollSeconds > MaxGPSPollSeconds {
		s.GPSPollSeconds = MaxGPSPollSeconds
	}
	return s
}

// Forecast - кэш прогноза, принадлежит внешнему сервису предсказаний. Содержимое не интерпретируется.
type Forecast = json.RawMessage
