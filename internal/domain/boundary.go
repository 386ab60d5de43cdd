package domain

import "time"

// Boundary - морская/юрисдикционная граница. Та же форма, что и Zone,
// но оценивается по расстоянию до ближайшего ребра.
type Boundary struct {
	ID          string     `json:"id" db:"id" validate:"required"`
	Name        string     `json:"name,omitempty" db:"name"`
	Kind        ZoneKind   `json:"kind" db:"kind" validate:"required,oneof=open restricted"`
	Season      Season     `json:"season" db:"season" validate:"required,oneof=open banned"`
	Coordinates []Position `json:"coordinates" db:"-" validate:"min=3"`
}

// ViolationType - причина нарушения
type ViolationType string

const (
	ViolationInside    ViolationType = "inside_restricted"
	ViolationProximity ViolationType = "proximity"
)

// Violation - граница, к которой судно подошло ближе порога
type Violation struct {
	BoundaryID   string        `json:"boundary_id"`
	BoundaryName string        `json:"boundary_name,omitempty"`
	Type         ViolationType `json:"type"`
	DistanceKm   float64       `json:"distance_km"`
	Severity     Severity      `json:"severity"`
}

// BoundaryStatus - снимок мониторинга границ. Заменяется целиком на каждом тике.
type BoundaryStatus struct {
	IsInRestrictedArea  bool        `json:"is_in_restricted_area"`
	NearestBoundaryID   string      `json:"nearest_boundary_id"`
	DistanceToNearestKm float64     `json:"distance_to_nearest_km"`
	Violations          []Violation `json:"violations"`
	Position            Position    `json:"position"`
	UsedFallback        bool        `json:"used_fallback"`
	EvaluatedAt         time.Time   `json:"evaluated_at"`
}
