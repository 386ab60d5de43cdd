// Package route упорядочивает точки маршрута жадным методом ближайшего соседа.
// Это эвристика, а не точное решение задачи коммивояжёра.
package route

import (
	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/geometry"
)

// OptimizeOrder возвращает перестановку 0..len(points)-1: начиная со start, на каждом шаге
// берётся ближайшая непосещённая точка. При равных расстояниях выигрывает меньший индекс.
// Возврат в start не учитывается.
func OptimizeOrder(start domain.Position, points []domain.Position) []int {
	order := make([]int, 0, len(points))
	visited := make([]bool, len(points))
	current := start

	for len(order) < len(points) {
		best := -1
		bestDist := 0.0
		for i, p := range points {
			if visited[i] {
				continue
			}
			d := geometry.DistanceKm(current, p)
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}
		visited[best] = true
		order = append(order, best)
		current = points[best]
	}

	return order
}

// PathLengthKm - длина пути от start через точки в заданном порядке
func PathLengthKm(start domain.Position, points []domain.Position, order []int) float64 {
	total := 0.0
	current := start
	for _, idx := range order {
		if idx < 0 || idx >= len(points) {
			continue
		}
		total += geometry.DistanceKm(current, points[idx])
		current = points[idx]
	}
	return total
}
