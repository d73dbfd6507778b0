package vision

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

// LoadImage читает изображение с диска в любом распространённом формате.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrImageLoad, path, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: %s: empty image", entity.ErrImageLoad, path)
	}
	return img, nil
}

// Rotate поворачивает изображение по часовой стрелке на 90°×k.
// Результат всегда новый буфер с началом координат в (0,0).
func Rotate(img image.Image, r entity.Rotation) image.Image {
	switch r {
	case entity.Rotate90:
		return imaging.Rotate270(img)
	case entity.Rotate180:
		return imaging.Rotate180(img)
	case entity.Rotate270:
		return imaging.Rotate90(img)
	}
	return imaging.Clone(img)
}

// Crop вырезает прямоугольник, обрезанный по границам изображения.
// Возвращает false, если пересечение пустое.
func Crop(img image.Image, box entity.Box) (image.Image, bool) {
	rect := image.Rect(box.X1, box.Y1, box.X2, box.Y2).Intersect(img.Bounds())
	if rect.Empty() {
		return nil, false
	}
	return imaging.Crop(img, rect), true
}

// Imaging реализация port.PageImages на github.com/disintegration/imaging.
type Imaging struct{}

func (Imaging) Load(path string) (image.Image, error) { return LoadImage(path) }

func (Imaging) Rotate(img image.Image, r entity.Rotation) image.Image { return Rotate(img, r) }

func (Imaging) Crop(img image.Image, box entity.Box) (image.Image, bool) { return Crop(img, box) }

var _ port.PageImages = Imaging{}
