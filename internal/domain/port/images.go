package port

import (
	"image"

	"omr-bot/internal/domain/entity"
)

// PageImages операции над растром бланка
type PageImages interface {
	// Load читает изображение по пути, ошибка оборачивает entity.ErrImageLoad
	Load(path string) (image.Image, error)

	// Rotate поворачивает изображение по часовой стрелке
	Rotate(img image.Image, r entity.Rotation) image.Image

	// Crop вырезает прямоугольник; false если пересечение с изображением пустое
	Crop(img image.Image, box entity.Box) (image.Image, bool)
}
