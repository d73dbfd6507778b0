package container

import (
	"fmt"
	"io"

	"omr-bot/config"
	"omr-bot/internal/infrastructure/inference"
	"omr-bot/internal/infrastructure/vision"
	"omr-bot/internal/logger"
)

// NewDetectors собирает детекторы выбранного бэкенда. Возвращённый io.Closer освобождает модели.
func NewDetectors(cfg *config.Config, log *logger.Logger) (Detectors, io.Closer, error) {
	d := Detectors{Images: vision.Imaging{}}

	// подсветка доступна только в сборке с OpenCV
	if annotator, err := vision.NewAnnotator(); err == nil {
		d.Annotator = annotator
	} else {
		log.Warning("annotated output disabled: %v", err)
	}

	switch cfg.Backend {
	case config.BackendHTTP:
		client := inference.NewClient(cfg.InferenceURL, cfg.InferenceTimeout)
		d.Regions, d.Bubbles = client, client
		return d, nopCloser{}, nil

	case config.BackendGoCV:
		regions, err := vision.NewYOLODetector(cfg.RegionModelPath)
		if err != nil {
			return Detectors{}, nil, fmt.Errorf("region model: %w", err)
		}
		bubbles, err := vision.NewYOLODetector(cfg.BubbleModelPath)
		if err != nil {
			regions.Close()
			return Detectors{}, nil, fmt.Errorf("bubble model: %w", err)
		}
		d.Regions, d.Bubbles = regions, bubbles
		return d, closers{regions, bubbles}, nil

	default:
		return Detectors{}, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type closers []io.Closer

func (c closers) Close() error {
	var first error
	for _, cl := range c {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
