package sheet

import (
	"errors"
	"fmt"

	"omr-bot/internal/domain/entity"
)

var (
	// ErrNoBubbles после фильтрации не осталось отметок
	ErrNoBubbles = errors.New("no bubbles to quantize")
	// ErrCellSize размер ячейки несовместим с размером отметок
	ErrCellSize = errors.New("implausible grid cell size")
)

// Grid матрица закрашенных ячеек rows×cols.
type Grid struct {
	Spec   entity.GridSpec
	filled [][]bool
}

// Quantize раскладывает отметки по сетке spec относительно их общей огибающей.
// Пустые отметки задают огибающую, но не отмечаются в матрице.
func Quantize(bubbles []entity.Bubble, spec entity.GridSpec, th Thresholds) (*Grid, error) {
	if len(bubbles) == 0 {
		return nil, ErrNoBubbles
	}
	if spec.Rows <= 0 || spec.Cols <= 0 {
		return nil, fmt.Errorf("invalid grid %dx%d", spec.Rows, spec.Cols)
	}

	env := envelope(bubbles)
	cellW := env.Width() / spec.Cols
	cellH := env.Height() / spec.Rows
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("%w: degenerate envelope %dx%d for grid %dx%d",
			ErrCellSize, env.Width(), env.Height(), spec.Rows, spec.Cols)
	}

	med := medianArea(bubbles)
	cellArea := float64(cellW * cellH)
	if !(med*th.CellLow < cellArea && cellArea < med*th.CellHigh) {
		return nil, fmt.Errorf("%w: cell area %.0f, median bubble area %.1f", ErrCellSize, cellArea, med)
	}

	g := newGrid(spec)
	for _, b := range bubbles {
		if !b.IsFilled() {
			continue
		}
		cx, cy := b.Box.Center()
		col := clamp((cx-env.X1)/cellW, spec.Cols)
		row := clamp((cy-env.Y1)/cellH, spec.Rows)
		g.filled[row][col] = true
	}
	return g, nil
}

// Filled сообщает, отмечена ли ячейка
func (g *Grid) Filled(row, col int) bool {
	return g.filled[row][col]
}

// Columns читает по столбцам: номер строки отметки или '?'.
// При нескольких отметках в столбце побеждает бо́льший номер строки.
func (g *Grid) Columns() entity.DecodedField {
	out := make([]byte, g.Spec.Cols)
	for j := range out {
		out[j] = entity.Unmarked
		for i := 0; i < g.Spec.Rows; i++ {
			if g.filled[i][j] {
				out[j] = digit(i)
			}
		}
	}
	return entity.DecodedField(out)
}

// Rows читает по строкам: номер столбца отметки или '?'.
// При нескольких отметках в строке побеждает бо́льший номер столбца.
func (g *Grid) Rows() entity.DecodedField {
	out := make([]byte, g.Spec.Rows)
	for i := range out {
		out[i] = entity.Unmarked
		for j := 0; j < g.Spec.Cols; j++ {
			if g.filled[i][j] {
				out[i] = digit(j)
			}
		}
	}
	return entity.DecodedField(out)
}

// AmbiguousColumns возвращает столбцы с несколькими отметками
func (g *Grid) AmbiguousColumns() []int {
	var out []int
	for j := 0; j < g.Spec.Cols; j++ {
		n := 0
		for i := 0; i < g.Spec.Rows; i++ {
			if g.filled[i][j] {
				n++
			}
		}
		if n > 1 {
			out = append(out, j)
		}
	}
	return out
}

// AmbiguousRows возвращает строки с несколькими отметками
func (g *Grid) AmbiguousRows() []int {
	var out []int
	for i := 0; i < g.Spec.Rows; i++ {
		n := 0
		for j := 0; j < g.Spec.Cols; j++ {
			if g.filled[i][j] {
				n++
			}
		}
		if n > 1 {
			out = append(out, i)
		}
	}
	return out
}

// DecodeColumns фильтрует отметки и читает поле по столбцам (номер ученика, код варианта).
func DecodeColumns(bubbles []entity.Bubble, spec entity.GridSpec, th Thresholds) (entity.DecodedField, []int, error) {
	good := FilterBubbles(bubbles, th.AreaLow, th.AreaHigh)
	g, err := Quantize(good, spec, th)
	if err != nil {
		return "", nil, err
	}
	return g.Columns(), g.AmbiguousColumns(), nil
}

func newGrid(spec entity.GridSpec) *Grid {
	filled := make([][]bool, spec.Rows)
	for i := range filled {
		filled[i] = make([]bool, spec.Cols)
	}
	return &Grid{Spec: spec, filled: filled}
}

func envelope(bubbles []entity.Bubble) entity.Box {
	env := bubbles[0].Box
	for _, b := range bubbles[1:] {
		env.X1 = min(env.X1, b.Box.X1)
		env.Y1 = min(env.Y1, b.Box.Y1)
		env.X2 = max(env.X2, b.Box.X2)
		env.Y2 = max(env.Y2, b.Box.Y2)
	}
	return env
}

// clamp удерживает индекс внутри сетки: центр крайней отметки может попасть ровно на границу огибающей.
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func digit(i int) byte {
	return byte('0' + i)
}
