// Package sheet восстанавливает логическую сетку бланка по набору найденных отметок.
package sheet

import "fmt"

// LayoutAxis взаимное расположение полей номера и кода варианта
type LayoutAxis string

const (
	// AxisStacked номер над кодом: вертикальный сдвиг больше горизонтального
	AxisStacked LayoutAxis = "stacked"
	// AxisSideBySide номер и код рядом: вертикальный сдвиг не больше горизонтального
	AxisSideBySide LayoutAxis = "side-by-side"
)

// ParseLayoutAxis разбирает значение из конфигурации.
func ParseLayoutAxis(s string) (LayoutAxis, error) {
	switch LayoutAxis(s) {
	case AxisStacked, AxisSideBySide:
		return LayoutAxis(s), nil
	}
	return "", fmt.Errorf("unknown layout axis %q", s)
}

// Thresholds калибровочные константы распознавания.
// Зависят от пары сканер/принтер, поэтому переопределяются конфигурацией.
type Thresholds struct {
	DefaultConfidence float64 // порог уверенности первого прохода детектора
	RelaxedConfidence float64 // порог повторного прохода
	MinBubbles        int     // при меньшем числе отметок повторный проход

	AreaLow  float64 // нижняя граница площади отметки относительно медианы
	AreaHigh float64 // верхняя граница площади отметки относительно медианы

	CellLow  float64 // нижняя граница площади ячейки относительно медианы
	CellHigh float64 // верхняя граница площади ячейки относительно медианы

	GroupGap float64 // разрыв по x1 (в медианных ширинах), начинающий новый блок ответов

	Axis LayoutAxis
}

// DefaultThresholds возвращает значения по умолчанию.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DefaultConfidence: 0.5,
		RelaxedConfidence: 0.35,
		MinBubbles:        5,
		AreaLow:           0.5,
		AreaHigh:          1.5,
		CellLow:           0.2,
		CellHigh:          1.8,
		GroupGap:          2,
		Axis:              AxisStacked,
	}
}
