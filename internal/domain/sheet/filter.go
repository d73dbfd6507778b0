package sheet

import (
	"sort"

	"omr-bot/internal/domain/entity"
)

// FilterBubbles оставляет отметки с площадью в [low×медиана, high×медиана].
// Слипшиеся кляксы и мелкий шум детектора сильно отличаются по площади от настоящих кружков.
func FilterBubbles(bubbles []entity.Bubble, low, high float64) []entity.Bubble {
	if len(bubbles) == 0 {
		return nil
	}
	med := medianArea(bubbles)

	good := make([]entity.Bubble, 0, len(bubbles))
	for _, b := range bubbles {
		area := float64(b.Box.Area())
		if area >= med*low && area <= med*high {
			good = append(good, b)
		}
	}
	return good
}

func medianArea(bubbles []entity.Bubble) float64 {
	values := make([]int, len(bubbles))
	for i, b := range bubbles {
		values[i] = b.Box.Area()
	}
	return median(values)
}

func medianWidth(bubbles []entity.Bubble) float64 {
	values := make([]int, len(bubbles))
	for i, b := range bubbles {
		values[i] = b.Box.Width()
	}
	return median(values)
}

// median для чётного числа значений берёт среднее двух центральных.
func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}
