//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"image"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

var (
	_ port.RegionDetector = (*YOLODetector)(nil)
	_ port.BubbleDetector = (*YOLODetector)(nil)
	_ port.SheetAnnotator = (*GoCVAnnotator)(nil)
)

// YOLODetector заглушка для сборки без OpenCV.
type YOLODetector struct {
	InputSize        int
	NMSThreshold     float64
	RegionConfidence float64
}

// NewYOLODetector возвращает ошибку, если сборка без тега gocv.
func NewYOLODetector(modelPath string) (*YOLODetector, error) {
	_ = modelPath
	return nil, entity.ErrDetectorUnavailable
}

// DetectRegions возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) DetectRegions(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	_ = ctx
	_ = img
	return nil, entity.ErrDetectorUnavailable
}

// DetectBubbles возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) DetectBubbles(ctx context.Context, crop image.Image, confidence float64) ([]entity.Detection, error) {
	_ = ctx
	_ = crop
	_ = confidence
	return nil, entity.ErrDetectorUnavailable
}

// Close ничего не делает.
func (d *YOLODetector) Close() error {
	return nil
}

// GoCVAnnotator заглушка для сборки без OpenCV.
type GoCVAnnotator struct{}

// NewAnnotator возвращает ошибку, если сборка без тега gocv.
func NewAnnotator() (*GoCVAnnotator, error) {
	return nil, entity.ErrDetectorUnavailable
}

// Annotate возвращает ошибку, если сборка без тега gocv.
func (a *GoCVAnnotator) Annotate(img image.Image, regions []entity.Region, bubbles []entity.Bubble) ([]byte, error) {
	_ = img
	_ = regions
	_ = bubbles
	return nil, entity.ErrDetectorUnavailable
}
