package port

import (
	"context"
	"image"

	"omr-bot/internal/domain/entity"
)

// RegionDetector интерфейс детектора областей бланка
type RegionDetector interface {
	// DetectRegions находит области (номер, код, ответы) на целом изображении
	DetectRegions(ctx context.Context, img image.Image) ([]entity.Detection, error)
}

// BubbleDetector интерфейс классификатора отметок
type BubbleDetector interface {
	// DetectBubbles находит отметки внутри вырезанной области с заданным порогом уверенности
	DetectBubbles(ctx context.Context, crop image.Image, confidence float64) ([]entity.Detection, error)
}
