package domain

import "time"

// Position - точка в градусах WGS84, без высоты
type Position struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains проверяет попадание точки в прямоугольник (границы включительно)
func (b BoundingBox) Contains(p Position) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// LocationReading - показание GPS от внешнего провайдера локации
type LocationReading struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Position возвращает координаты показания
func (r LocationReading) Position() Position {
	return Position{Lat: r.Lat, Lon: r.Lon}
}

// NowMillis - текущее время в миллисекундах эпохи, как хранит приложение
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
