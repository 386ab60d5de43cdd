// Package zone классифицирует позицию по каталогу регуляторных зон
// и оценивает близость к морским границам.
package zone

import (
	"sort"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/geometry"
)

// NoBoundaryDistance - значение DistanceToNearestKm, когда границ в каталоге нет
const NoBoundaryDistance = -1.0

// IsFishingAllowed - false, если зона закрыта или в ней сезонный запрет.
// Не зависит от текущей позиции.
func IsFishingAllowed(z domain.Zone) bool {
	return z.IsFishingAllowed()
}

// Catalog - неизменяемый каталог зон и границ, загружается один раз при старте.
// Безопасен для конкурентного чтения.
type Catalog struct {
	zones      []domain.Zone
	zoneBoxes  []domain.BoundingBox
	boundaries []domain.Boundary
}

// NewCatalog копирует входные данные, вызывающий может переиспользовать слайсы
func NewCatalog(zones []domain.Zone, boundaries []domain.Boundary) *Catalog {
	c := &Catalog{
		zones:      make([]domain.Zone, len(zones)),
		zoneBoxes:  make([]domain.BoundingBox, len(zones)),
		boundaries: make([]domain.Boundary, len(boundaries)),
	}
	for i, z := range zones {
		z.Coordinates = append([]domain.Position(nil), z.Coordinates...)
		c.zones[i] = z
		c.zoneBoxes[i] = geometry.Bounds(z.Coordinates)
	}
	for i, b := range boundaries {
		b.Coordinates = append([]domain.Position(nil), b.Coordinates...)
		c.boundaries[i] = b
	}
	return c
}

// Zones возвращает копию списка зон
func (c *Catalog) Zones() []domain.Zone {
	return append([]domain.Zone(nil), c.zones...)
}

// Boundaries возвращает копию списка границ
func (c *Catalog) Boundaries() []domain.Boundary {
	return append([]domain.Boundary(nil), c.boundaries...)
}

// ActiveZones - зоны, где рыбалка разрешена
func (c *Catalog) ActiveZones() []domain.Zone {
	active := make([]domain.Zone, 0, len(c.zones))
	for _, z := range c.zones {
		if IsFishingAllowed(z) {
			active = append(active, z)
		}
	}
	return active
}

// containing - зоны каталога, содержащие точку, в порядке каталога
func (c *Catalog) containing(p domain.Position) []domain.Zone {
	var hits []domain.Zone
	for i, z := range c.zones {
		if !c.zoneBoxes[i].Contains(p) {
			continue
		}
		if geometry.ContainsPoint(z.Coordinates, p) {
			hits = append(hits, z)
		}
	}
	return hits
}

// Classify определяет статус позиции. Приоритет фиксирован и не зависит от порядка каталога:
// restricted, затем seasonal_ban, затем caution (зона запрещает рыбалку по иной причине), иначе open.
func (c *Catalog) Classify(p domain.Position) domain.ZoneClassification {
	hits := c.containing(p)

	rules := []struct {
		class domain.Classification
		match func(domain.Zone) bool
	}{
		{domain.ClassificationRestricted, func(z domain.Zone) bool { return z.Kind == domain.ZoneKindRestricted }},
		{domain.ClassificationSeasonalBan, func(z domain.Zone) bool { return z.Season == domain.SeasonBanned }},
		{domain.ClassificationCaution, func(z domain.Zone) bool { return !IsFishingAllowed(z) }},
	}

	for _, rule := range rules {
		for _, z := range hits {
			if rule.match(z) {
				return domain.ZoneClassification{Classification: rule.class, ZoneID: z.ID, ZoneName: z.Name}
			}
		}
	}

	result := domain.ZoneClassification{Classification: domain.ClassificationOpen}
	if len(hits) > 0 {
		result.ZoneID = hits[0].ID
		result.ZoneName = hits[0].Name
	}
	return result
}

// Classify - классификация по произвольному списку зон
func Classify(zones []domain.Zone, p domain.Position) domain.ZoneClassification {
	return NewCatalog(zones, nil).Classify(p)
}

// EvaluateBoundaries считает расстояние до каждой границы и собирает нарушения:
// нахождение внутри закрытой границы и приближение ближе thresholdKm.
// Ближайшей при равенстве считается первая по каталогу.
func (c *Catalog) EvaluateBoundaries(p domain.Position, thresholdKm float64) domain.BoundaryStatus {
	return EvaluateBoundaries(c.boundaries, p, thresholdKm)
}

// EvaluateBoundaries - оценка по произвольному списку границ
func EvaluateBoundaries(boundaries []domain.Boundary, p domain.Position, thresholdKm float64) domain.BoundaryStatus {
	status := domain.BoundaryStatus{
		DistanceToNearestKm: NoBoundaryDistance,
		Violations:          []domain.Violation{},
		Position:            p,
	}

	for _, b := range boundaries {
		if len(b.Coordinates) == 0 {
			continue
		}

		d := geometry.NearestDistanceToRing(b.Coordinates, p)
		if status.NearestBoundaryID == "" || d < status.DistanceToNearestKm {
			status.NearestBoundaryID = b.ID
			status.DistanceToNearestKm = d
		}

		if b.Kind == domain.ZoneKindRestricted && geometry.ContainsPoint(b.Coordinates, p) {
			status.IsInRestrictedArea = true
			status.Violations = append(status.Violations, domain.Violation{
				BoundaryID:   b.ID,
				BoundaryName: b.Name,
				Type:         domain.ViolationInside,
				DistanceKm:   d,
				Severity:     domain.SeverityDanger,
			})
			continue
		}

		if d < thresholdKm {
			severity := domain.SeverityWarning
			if d < thresholdKm/2 {
				severity = domain.SeverityDanger
			}
			status.Violations = append(status.Violations, domain.Violation{
				BoundaryID:   b.ID,
				BoundaryName: b.Name,
				Type:         domain.ViolationProximity,
				DistanceKm:   d,
				Severity:     severity,
			})
		}
	}

	sort.SliceStable(status.Violations, func(i, j int) bool {
		vi, vj := status.Violations[i], status.Violations[j]
		if (vi.Type == domain.ViolationInside) != (vj.Type == domain.ViolationInside) {
			return vi.Type == domain.ViolationInside
		}
		return vi.DistanceKm < vj.DistanceKm
	})

	return status
}
