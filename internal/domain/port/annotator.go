package port

import (
	"image"

	"omr-bot/internal/domain/entity"
)

// SheetAnnotator рисует найденные области и отметки поверх бланка
type SheetAnnotator interface {
	// Annotate возвращает JPEG с подсветкой областей и отметок (координаты страницы)
	Annotate(img image.Image, regions []entity.Region, bubbles []entity.Bubble) ([]byte, error)
}
