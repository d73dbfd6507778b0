package app

import (
	"context"
	"fmt"
	"image"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
	"omr-bot/internal/domain/sheet"
	"omr-bot/internal/logger"
)

// BubbleReader оборачивает классификатор отметок политикой повторного прохода.
type BubbleReader struct {
	detector port.BubbleDetector
	th       sheet.Thresholds
	log      *logger.Logger
}

func NewBubbleReader(detector port.BubbleDetector, th sheet.Thresholds, log *logger.Logger) *BubbleReader {
	return &BubbleReader{detector: detector, th: th, log: log}
}

// Read ищет отметки с порогом по умолчанию; если детектор вернул меньше MinBubbles рамок,
// повторяет один раз с пониженным порогом и берёт только второй результат.
// Считаются все рамки детектора, до отбрасывания неизвестных классов.
// Пустой результат не ошибка: ошибка означает сбой самого детектора.
func (r *BubbleReader) Read(ctx context.Context, crop image.Image) ([]entity.Bubble, error) {
	detections, err := r.detect(ctx, crop, r.th.DefaultConfidence)
	if err != nil {
		return nil, err
	}
	if len(detections) >= r.th.MinBubbles {
		return toBubbles(detections), nil
	}

	r.log.Info("found %d bubbles at confidence %.2f, retrying at %.2f",
		len(detections), r.th.DefaultConfidence, r.th.RelaxedConfidence)
	detections, err = r.detect(ctx, crop, r.th.RelaxedConfidence)
	if err != nil {
		return nil, err
	}
	return toBubbles(detections), nil
}

func (r *BubbleReader) detect(ctx context.Context, crop image.Image, confidence float64) ([]entity.Detection, error) {
	detections, err := r.detector.DetectBubbles(ctx, crop, confidence)
	if err != nil {
		return nil, fmt.Errorf("%w: bubbles: %w", entity.ErrDetector, err)
	}
	return detections, nil
}

// toBubbles отбрасывает рамки неизвестных классов и вырожденные рамки.
func toBubbles(detections []entity.Detection) []entity.Bubble {
	bubbles := make([]entity.Bubble, 0, len(detections))
	for _, d := range detections {
		cls, ok := entity.BubbleClassFromLabel(d.Label)
		if !ok || !d.Box.Valid() {
			continue
		}
		bubbles = append(bubbles, entity.Bubble{Box: d.Box, Class: cls})
	}
	return bubbles
}
