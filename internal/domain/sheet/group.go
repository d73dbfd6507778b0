package sheet

import (
	"fmt"
	"sort"

	"omr-bot/internal/domain/entity"
)

// RegionBubbles отметки одной области ответов
type RegionBubbles struct {
	Box     entity.Box
	Bubbles []entity.Bubble
}

// AnswerGroup один физический блок из 10 вопросов по 4 варианта.
// Блок g отвечает за вопросы [10g, 10g+10).
type AnswerGroup struct {
	Index   int
	Bubbles []entity.Bubble
}

// GroupAnswers делит области ответов на блоки по разрывам между x1 соседних отметок.
// Области упорядочиваются сверху вниз, нумерация блоков сквозная.
func GroupAnswers(regions []RegionBubbles, th Thresholds) ([]AnswerGroup, error) {
	sorted := append([]RegionBubbles(nil), regions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Y1 < sorted[j].Box.Y1
	})

	var groups []AnswerGroup
	for n, region := range sorted {
		bubbles := FilterBubbles(region.Bubbles, th.AreaLow, th.AreaHigh)
		if len(bubbles) == 0 {
			return nil, fmt.Errorf("answer region %d: %w", n, ErrNoBubbles)
		}

		gap := medianWidth(bubbles) * th.GroupGap
		sort.SliceStable(bubbles, func(i, j int) bool {
			return bubbles[i].Box.X1 < bubbles[j].Box.X1
		})

		current := AnswerGroup{Index: len(groups)}
		prev := bubbles[0]
		for _, b := range bubbles {
			if float64(abs(b.Box.X1-prev.Box.X1)) > gap {
				groups = append(groups, current)
				current = AnswerGroup{Index: len(groups)}
			}
			current.Bubbles = append(current.Bubbles, b)
			prev = b
		}
		groups = append(groups, current)
	}
	return groups, nil
}

// DecodeAnswers читает каждый блок по строкам сетки 10×4.
// Ошибка любого блока проваливает всё поле ответов.
func DecodeAnswers(groups []AnswerGroup, th Thresholds) (entity.DecodedField, []int, error) {
	spec := entity.AnswerGrid
	out := make([]byte, 0, len(groups)*spec.Rows)
	var ambiguous []int
	for _, group := range groups {
		g, err := Quantize(group.Bubbles, spec, th)
		if err != nil {
			return "", nil, fmt.Errorf("answer group %d: %w", group.Index, err)
		}
		out = append(out, g.Rows()...)
		for _, row := range g.AmbiguousRows() {
			ambiguous = append(ambiguous, group.Index*spec.Rows+row)
		}
	}
	return entity.DecodedField(out), ambiguous, nil
}

// AnswerLetters переводит индексы 0..3 в буквы A..D, ключи это номера вопросов с единицы.
func AnswerLetters(field entity.DecodedField) map[int]string {
	answers := make(map[int]string, len(field))
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == entity.Unmarked {
			answers[i+1] = string(entity.Unmarked)
			continue
		}
		answers[i+1] = string(rune('A' + (c - '0')))
	}
	return answers
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
