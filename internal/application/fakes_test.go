package app

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/disintegration/imaging"

	"omr-bot/internal/domain/entity"
)

// Синтетический бланк: области залиты своим цветом, отметки это квадраты 20×20 с шагом 24.
var (
	idColor       = color.NRGBA{R: 200, B: 200, A: 255}
	codeColor     = color.NRGBA{R: 200, G: 200, A: 255}
	answerColor   = color.NRGBA{B: 200, A: 255}
	filledColor   = color.NRGBA{A: 255}
	unfilledColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

const (
	bubbleSize = 20
	pitch      = 24
	margin     = 10
)

var (
	regionClasses = map[color.NRGBA]int{answerColor: 0, codeColor: 1, idColor: 2}
	bubbleClasses = map[color.NRGBA]int{filledColor: 0, unfilledColor: 1}
)

type page struct {
	img *image.NRGBA
}

func newPage(w, h int, bg color.Color) *page {
	return &page{img: imaging.New(w, h, bg)}
}

func (p *page) fill(r image.Rectangle, c color.Color) {
	draw.Draw(p.img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// grid рисует сетку отметок с левым верхним углом (x, y).
func (p *page) grid(x, y int, spec entity.GridSpec, filled func(i, j int) bool) {
	for i := 0; i < spec.Rows; i++ {
		for j := 0; j < spec.Cols; j++ {
			c := unfilledColor
			if filled(i, j) {
				c = filledColor
			}
			bx, by := x+j*pitch, y+i*pitch
			p.fill(image.Rect(bx, by, bx+bubbleSize, by+bubbleSize), c)
		}
	}
}

// region рисует область с одной сеткой внутри.
func (p *page) region(x, y int, c color.NRGBA, spec entity.GridSpec, filled func(i, j int) bool) {
	size := gridSize(spec)
	p.fill(image.Rect(x, y, x+size.X+2*margin, y+size.Y+2*margin), c)
	p.grid(x+margin, y+margin, spec, filled)
}

func gridSize(spec entity.GridSpec) image.Point {
	return image.Pt((spec.Cols-1)*pitch+bubbleSize, (spec.Rows-1)*pitch+bubbleSize)
}

func digitsAt(rows ...int) func(i, j int) bool {
	return func(i, j int) bool { return i == rows[j] }
}

func none(i, j int) bool { return false }

// sheetPage правильно ориентированный бланк: номер над кодом, справа два блока ответов.
// Блок 0: строка i закрашена в столбце i mod 4; блок 1 пустой.
func sheetPage() *page {
	p := newPage(700, 900, color.White)
	p.region(20, 20, idColor, entity.IDGrid, digitsAt(3, 1, 9, 0, 5, 2))
	p.region(20, 320, codeColor, entity.CodeGrid, digitsAt(0, 4, 2))

	block := gridSize(entity.AnswerGrid)
	p.fill(image.Rect(250, 320, 250+2*margin+2*block.X+60, 320+2*margin+block.Y), answerColor)
	p.grid(250+margin, 320+margin, entity.AnswerGrid, func(i, j int) bool { return j == i%4 })
	p.grid(250+margin+block.X+60, 320+margin, entity.AnswerGrid, none)
	return p
}

// blobDetector находит связные области заданных цветов. Реализует оба порта детекторов.
type blobDetector struct {
	mu          sync.Mutex
	events      []string
	confidences []float64
	regionErr   error
}

func (d *blobDetector) DetectRegions(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	d.mu.Lock()
	d.events = append(d.events, "regions")
	d.mu.Unlock()
	if d.regionErr != nil {
		return nil, d.regionErr
	}
	return components(img, regionClasses), nil
}

func (d *blobDetector) DetectBubbles(ctx context.Context, crop image.Image, confidence float64) ([]entity.Detection, error) {
	d.mu.Lock()
	d.events = append(d.events, "bubbles")
	d.confidences = append(d.confidences, confidence)
	d.mu.Unlock()
	return components(crop, bubbleClasses), nil
}

func (d *blobDetector) count(event string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, e := range d.events {
		if e == event {
			n++
		}
	}
	return n
}

// components ищет 4-связные компоненты пикселей заданных цветов и возвращает их рамки.
func components(src image.Image, classes map[color.NRGBA]int) []entity.Detection {
	img := imaging.Clone(src)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	at := func(x, y int) color.NRGBA {
		i := img.PixOffset(x, y)
		return color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
	}

	seen := make([]bool, w*h)
	var out []entity.Detection
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if seen[y*w+x] {
				continue
			}
			c := at(x, y)
			label, ok := classes[c]
			if !ok {
				continue
			}

			box := entity.Box{X1: x, Y1: y, X2: x + 1, Y2: y + 1}
			stack := []image.Point{{X: x, Y: y}}
			seen[y*w+x] = true
			for len(stack) > 0 {
				pt := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				box.X1, box.Y1 = min(box.X1, pt.X), min(box.Y1, pt.Y)
				box.X2, box.Y2 = max(box.X2, pt.X+1), max(box.Y2, pt.Y+1)

				for _, n := range [4]image.Point{{X: pt.X + 1, Y: pt.Y}, {X: pt.X - 1, Y: pt.Y}, {X: pt.X, Y: pt.Y + 1}, {X: pt.X, Y: pt.Y - 1}} {
					if n.X < 0 || n.Y < 0 || n.X >= w || n.Y >= h || seen[n.Y*w+n.X] || at(n.X, n.Y) != c {
						continue
					}
					seen[n.Y*w+n.X] = true
					stack = append(stack, n)
				}
			}
			out = append(out, entity.Detection{Box: box, Label: label, Confidence: 0.9})
		}
	}
	return out
}

// scriptedBubbles отдаёт заранее заданные ответы по порядку вызовов.
type scriptedBubbles struct {
	responses   [][]entity.Detection
	err         error
	confidences []float64
}

func (s *scriptedBubbles) DetectBubbles(ctx context.Context, crop image.Image, confidence float64) ([]entity.Detection, error) {
	s.confidences = append(s.confidences, confidence)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return nil, nil
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func squares(n int, label int) []entity.Detection {
	out := make([]entity.Detection, n)
	for i := range out {
		out[i] = entity.Detection{Box: entity.Box{X1: i * pitch, Y1: 0, X2: i*pitch + bubbleSize, Y2: bubbleSize}, Label: label, Confidence: 0.6}
	}
	return out
}

// scriptedRegions возвращает одни и те же области при любом повороте.
type scriptedRegions struct {
	detections []entity.Detection
	calls      int
}

func (s *scriptedRegions) DetectRegions(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	s.calls++
	return s.detections, nil
}
