// Package geometry - чистые геометрические функции над координатами WGS84:
// расстояние по гаверсинусу, принадлежность точки полигону и расстояние до кольца.
package geometry

import (
	"math"

	"github.com/sea-companion/internal/domain"
)

const earthRadiusKm = 6371.0

// onEdgeEpsilon - допуск в градусах для точек на ребре
const onEdgeEpsilon = 1e-12

func toRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceKm вычисляет расстояние по большому кругу между двумя точками в километрах.
// Симметрична побитово: DistanceKm(a, b) == DistanceKm(b, a).
func DistanceKm(a, b domain.Position) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	cosProduct := math.Cos(toRad(a.Lat)) * math.Cos(toRad(b.Lat))

	h := sinLat*sinLat + sinLon*sinLon*cosProduct
	if h > 1 {
		h = 1
	}
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// normalizeRing убирает подряд идущие дубликаты вершин, включая явное замыкание последней вершиной
func normalizeRing(polygon []domain.Position) []domain.Position {
	ring := make([]domain.Position, 0, len(polygon))
	for _, p := range polygon {
		if len(ring) > 0 && ring[len(ring)-1] == p {
			continue
		}
		ring = append(ring, p)
	}
	for len(ring) > 1 && ring[len(ring)-1] == ring[0] {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// ContainsPoint - правило even-odd (ray casting) по неявно замкнутому кольцу.
// Точка на ребре или в вершине считается принадлежащей полигону.
// Вырожденные полигоны (меньше 3 различных вершин) не содержат ничего.
func ContainsPoint(polygon []domain.Position, p domain.Position) bool {
	ring := normalizeRing(polygon)
	n := len(ring)
	if n < 3 {
		return false
	}

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if onSegment(p, ring[j], ring[i]) {
			return true
		}
	}

	inside := false
	x, y := p.Lon, p.Lat
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// onSegment проверяет, лежит ли p на отрезке ab (в плоских градусах)
func onSegment(p, a, b domain.Position) bool {
	cross := (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
	if math.Abs(cross) > onEdgeEpsilon {
		return false
	}
	return p.Lon >= math.Min(a.Lon, b.Lon)-onEdgeEpsilon &&
		p.Lon <= math.Max(a.Lon, b.Lon)+onEdgeEpsilon &&
		p.Lat >= math.Min(a.Lat, b.Lat)-onEdgeEpsilon &&
		p.Lat <= math.Max(a.Lat, b.Lat)+onEdgeEpsilon
}

// NearestDistanceToRing - минимальное расстояние (км) от p до рёбер кольца, включая замыкающее.
// Пустой полигон даёт 0, одна вершина - расстояние до неё.
func NearestDistanceToRing(polygon []domain.Position, p domain.Position) float64 {
	ring := normalizeRing(polygon)
	switch len(ring) {
	case 0:
		return 0
	case 1:
		return DistanceKm(p, ring[0])
	}

	best := math.Inf(1)
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if d := DistanceKm(p, closestOnSegment(p, a, b)); d < best {
			best = d
		}
	}
	return best
}

// closestOnSegment - ближайшая к p точка отрезка ab. Считается в локальной
// равнопромежуточной проекции с центром в p, что достаточно точно для рёбер
// длиной в десятки километров.
func closestOnSegment(p, a, b domain.Position) domain.Position {
	scale := math.Cos(toRad(p.Lat))

	ax, ay := wrapLon(a.Lon-p.Lon)*scale, a.Lat-p.Lat
	bx, by := wrapLon(b.Lon-p.Lon)*scale, b.Lat-p.Lat

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a
	}

	t := -(ax*dx + ay*dy) / lenSq
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	x, y := ax+t*dx, ay+t*dy
	lon := p.Lon
	if scale != 0 {
		lon = p.Lon + x/scale
	}
	return domain.Position{Lat: p.Lat + y, Lon: wrapLon(lon)}
}

// wrapLon приводит долготу к диапазону [-180, 180]
func wrapLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// Bounds - ограничивающий прямоугольник вершин полигона
func Bounds(polygon []domain.Position) domain.BoundingBox {
	if len(polygon) == 0 {
		return domain.BoundingBox{}
	}
	box := domain.BoundingBox{
		MinLat: polygon[0].Lat, MaxLat: polygon[0].Lat,
		MinLon: polygon[0].Lon, MaxLon: polygon[0].Lon,
	}
	for _, p := range polygon[1:] {
		box.MinLat = math.Min(box.MinLat, p.Lat)
		box.MaxLat = math.Max(box.MaxLat, p.Lat)
		box.MinLon = math.Min(box.MinLon, p.Lon)
		box.MaxLon = math.Max(box.MaxLon, p.Lon)
	}
	return box
}
