package container

import (
	app "omr-bot/internal/application"
	"omr-bot/internal/domain/port"
	"omr-bot/internal/domain/sheet"
	"omr-bot/internal/logger"
)

// Detectors зависимости распознавания, которые main выбирает по конфигурации
type Detectors struct {
	Regions   port.RegionDetector
	Bubbles   port.BubbleDetector
	Images    port.PageImages
	Annotator port.SheetAnnotator // может быть nil
}

// Options параметры сборки сервисов
type Options struct {
	Thresholds    sheet.Thresholds
	DecodeWorkers int
	TempDir       string
}

type Container struct {
	UserService  *app.UserService
	SheetDecoder *app.SheetDecoder
	ScanService  *app.ScanService
	BatchService *app.BatchService
}

func New(userRepo port.UserRepository, d Detectors, opts Options, log *logger.Logger) *Container {
	userService := app.NewUserService(userRepo)
	decoder := app.NewSheetDecoder(d.Regions, d.Bubbles, d.Images, opts.Thresholds, log)

	return &Container{
		UserService:  userService,
		SheetDecoder: decoder,
		ScanService:  app.NewScanService(userService, decoder, d.Annotator, opts.TempDir, log),
		BatchService: app.NewBatchService(decoder, opts.DecodeWorkers),
	}
}
