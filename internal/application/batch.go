package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"omr-bot/internal/domain/entity"
)

// BatchItem результат одного файла пакета
type BatchItem struct {
	Path   string
	Result *entity.DecodeResult
	Err    error
}

// BatchService распознаёт несколько бланков параллельно, по одному вызову декодера на бланк.
type BatchService struct {
	decoder *SheetDecoder
	workers int
}

func NewBatchService(decoder *SheetDecoder, workers int) *BatchService {
	if workers < 1 {
		workers = 1
	}
	return &BatchService{decoder: decoder, workers: workers}
}

// DecodeFiles возвращает результаты в порядке путей. Ошибка одного файла не останавливает остальные.
func (s *BatchService) DecodeFiles(ctx context.Context, paths []string) []BatchItem {
	items := make([]BatchItem, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range paths {
		g.Go(func() error {
			result, err := s.decoder.DecodeFile(ctx, path)
			items[i] = BatchItem{Path: path, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return items
}
