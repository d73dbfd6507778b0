//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

var (
	_ port.RegionDetector = (*YOLODetector)(nil)
	_ port.BubbleDetector = (*YOLODetector)(nil)
)

// YOLODetector запускает ONNX-модель YOLO (выход [1, 4+classes, N]) через OpenCV DNN.
// Один экземпляр на модель, создаётся при старте процесса.
type YOLODetector struct {
	InputSize        int
	NMSThreshold     float64
	RegionConfidence float64

	net gocv.Net
	mu  sync.Mutex // gocv.Net не допускает параллельный Forward
}

// NewYOLODetector загружает модель и выбирает CPU как цель вычислений.
func NewYOLODetector(modelPath string) (*YOLODetector, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network %s", modelPath)
	}
	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	return &YOLODetector{
		InputSize:        640,
		NMSThreshold:     0.45,
		RegionConfidence: 0.25,
		net:              net,
	}, nil
}

// DetectRegions находит области бланка.
func (d *YOLODetector) DetectRegions(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	return d.detect(ctx, img, d.RegionConfidence)
}

// DetectBubbles находит отметки внутри области.
func (d *YOLODetector) DetectBubbles(ctx context.Context, crop image.Image, confidence float64) ([]entity.Detection, error) {
	return d.detect(ctx, crop, confidence)
}

// Close освобождает сеть.
func (d *YOLODetector) Close() error {
	return d.net.Close()
}

func (d *YOLODetector) detect(ctx context.Context, img image.Image, confidence float64) ([]entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, nil
	}

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(d.InputSize, d.InputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	sizes := output.Size()
	if len(sizes) != 3 || sizes[1] <= 4 {
		return nil, fmt.Errorf("unexpected output shape %v", sizes)
	}
	channels, n := sizes[1], sizes[2]
	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	xFactor := float64(mat.Cols()) / float64(d.InputSize)
	yFactor := float64(mat.Rows()) / float64(d.InputSize)

	var (
		rects  []image.Rectangle
		scores []float32
		labels []int
	)
	for i := 0; i < n; i++ {
		label, score := -1, float32(0)
		for c := 4; c < channels; c++ {
			if s := data[c*n+i]; s > score {
				label, score = c-4, s
			}
		}
		if label < 0 || float64(score) < confidence {
			continue
		}

		cx, cy := float64(data[i]), float64(data[n+i])
		w, h := float64(data[2*n+i]), float64(data[3*n+i])
		rects = append(rects, image.Rect(
			int((cx-w/2)*xFactor), int((cy-h/2)*yFactor),
			int((cx+w/2)*xFactor), int((cy+h/2)*yFactor),
		))
		scores = append(scores, score)
		labels = append(labels, label)
	}
	if len(rects) == 0 {
		return nil, nil
	}

	indices := gocv.NMSBoxes(rects, scores, float32(confidence), float32(d.NMSThreshold))
	detections := make([]entity.Detection, 0, len(indices))
	for _, idx := range indices {
		r := rects[idx]
		detections = append(detections, entity.Detection{
			Box:        entity.Box{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
			Label:      labels[idx],
			Confidence: float64(scores[idx]),
		})
	}
	return detections, nil
}
