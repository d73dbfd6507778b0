package sheet

import "omr-bot/internal/domain/entity"

const (
	bubbleSize = 20
	pitch      = 24
)

// gridBubbles рисует сетку rows×cols с отступом (ox, oy); filled(i, j) выбирает закрашенные ячейки.
func gridBubbles(spec entity.GridSpec, ox, oy int, filled func(i, j int) bool) []entity.Bubble {
	var out []entity.Bubble
	for i := 0; i < spec.Rows; i++ {
		for j := 0; j < spec.Cols; j++ {
			cls := entity.Unfilled
			if filled(i, j) {
				cls = entity.Filled
			}
			x, y := ox+j*pitch, oy+i*pitch
			out = append(out, entity.Bubble{
				Box:   entity.Box{X1: x, Y1: y, X2: x + bubbleSize, Y2: y + bubbleSize},
				Class: cls,
			})
		}
	}
	return out
}

func square(x, y, side int, cls entity.BubbleClass) entity.Bubble {
	return entity.Bubble{Box: entity.Box{X1: x, Y1: y, X2: x + side, Y2: y + side}, Class: cls}
}
