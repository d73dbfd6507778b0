package sheet

import (
	"errors"
	"fmt"

	"omr-bot/internal/domain/entity"
)

// ErrLayout разметка не соответствует правильно повёрнутому бланку
var ErrLayout = errors.New("invalid region layout")

// ValidateLayout проверяет количество и взаимное расположение областей для текущей гипотезы поворота.
// Это главный фильтр неверных поворотов до дорогого распознавания полей.
func ValidateLayout(ids, codes, answers []entity.Box, axis LayoutAxis) error {
	if len(ids) != 1 {
		return fmt.Errorf("%w: %d id regions, want 1", ErrLayout, len(ids))
	}
	if len(codes) != 1 {
		return fmt.Errorf("%w: %d code regions, want 1", ErrLayout, len(codes))
	}
	if len(answers) == 0 {
		return fmt.Errorf("%w: no answer regions", ErrLayout)
	}

	pID, pCode, pAnswer := priority(ids), priority(codes), priority(answers)
	if !(pID < pCode && pCode < pAnswer) {
		return fmt.Errorf("%w: region order id=%d code=%d answer=%d", ErrLayout, pID, pCode, pAnswer)
	}

	dy := abs(ids[0].Y1 - codes[0].Y1)
	dx := abs(ids[0].X1 - codes[0].X1)
	switch axis {
	case AxisSideBySide:
		if dy > dx {
			return fmt.Errorf("%w: id and code are stacked (dx=%d dy=%d)", ErrLayout, dx, dy)
		}
	default:
		if dy <= dx {
			return fmt.Errorf("%w: id and code are side by side (dx=%d dy=%d)", ErrLayout, dx, dy)
		}
	}
	return nil
}

// priority наименьшая сумма x1+y1 по набору прямоугольников.
func priority(boxes []entity.Box) int {
	p := boxes[0].X1 + boxes[0].Y1
	for _, b := range boxes[1:] {
		p = min(p, b.X1+b.Y1)
	}
	return p
}
