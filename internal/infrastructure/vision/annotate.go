//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

var (
	regionColor = map[entity.RegionType]color.RGBA{
		entity.AnswerBlock: {R: 255, A: 255},
		entity.CodeBlock:   {R: 255, G: 255, A: 255},
		entity.IDBlock:     {R: 128, B: 128, A: 255},
	}
	filledColor   = color.RGBA{G: 255, A: 255}
	unfilledColor = color.RGBA{B: 255, A: 255}
)

var _ port.SheetAnnotator = (*GoCVAnnotator)(nil)

// GoCVAnnotator рисует области и отметки и кодирует результат в JPEG.
type GoCVAnnotator struct{}

// NewAnnotator создаёт аннотатор.
func NewAnnotator() (*GoCVAnnotator, error) {
	return &GoCVAnnotator{}, nil
}

// Annotate рисует рамки областей и отметок поверх повернутого бланка.
func (a *GoCVAnnotator) Annotate(img image.Image, regions []entity.Region, bubbles []entity.Bubble) ([]byte, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	for _, r := range regions {
		rect := image.Rect(r.Box.X1, r.Box.Y1, r.Box.X2, r.Box.Y2)
		if err := gocv.Rectangle(&mat, rect, regionColor[r.Type], 2); err != nil {
			return nil, fmt.Errorf("draw region: %w", err)
		}
		if err := gocv.PutText(&mat, r.Type.String(), image.Pt(r.Box.X1, r.Box.Y1-5), gocv.FontHersheySimplex, 0.5, regionColor[r.Type], 1); err != nil {
			return nil, fmt.Errorf("draw label: %w", err)
		}
	}
	for _, b := range bubbles {
		c := unfilledColor
		if b.IsFilled() {
			c = filledColor
		}
		rect := image.Rect(b.Box.X1, b.Box.Y1, b.Box.X2, b.Box.Y2)
		if err := gocv.Rectangle(&mat, rect, c, 1); err != nil {
			return nil, fmt.Errorf("draw bubble: %w", err)
		}
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
