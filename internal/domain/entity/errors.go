package entity

import "errors"

var (
	// ErrImageLoad изображение не найдено или не декодируется
	ErrImageLoad = errors.New("image load failed")
	// ErrNoOrientation ни один поворот не прошёл проверку разметки
	ErrNoOrientation = errors.New("no valid orientation found")
	// ErrDetector внешний детектор вернул ошибку
	ErrDetector = errors.New("detector failed")
	// ErrDetectorUnavailable сборка без поддержки детектора
	ErrDetectorUnavailable = errors.New("detector is not available")
)
