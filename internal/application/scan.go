package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
	"omr-bot/internal/logger"
)

// ScanService ведёт пользователя бота от фото бланка до результата.
type ScanService struct {
	users     *UserService
	decoder   *SheetDecoder
	annotator port.SheetAnnotator
	tempDir   string
	log       *logger.Logger
}

// ScanOutput содержит результат распознавания и картинку с подсветкой.
type ScanOutput struct {
	Result    *entity.DecodeResult
	Annotated []byte
}

// NewScanService создаёт сервис; annotator может быть nil.
func NewScanService(users *UserService, decoder *SheetDecoder, annotator port.SheetAnnotator, tempDir string, log *logger.Logger) *ScanService {
	return &ScanService{
		users:     users,
		decoder:   decoder,
		annotator: annotator,
		tempDir:   tempDir,
		log:       log,
	}
}

// ProcessSheetPhoto сохраняет фото во временный файл, распознаёт его и удаляет файл при любом исходе.
// Пользователь возвращается в главное меню; удачный результат запоминается.
func (s *ScanService) ProcessSheetPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*ScanOutput, error) {
	if s.decoder == nil {
		return nil, errors.New("decoder is not configured")
	}
	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}
	defer func() {
		if _, err := s.users.SetState(ctx, userID, chatID, entity.StateMainMenu); err != nil {
			s.log.Error("reset state for user %d: %v", userID, err)
		}
	}()

	path, err := s.writeTemp(photo)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warning("remove temp file %s: %v", path, err)
		}
	}()

	result, trace, err := s.decoder.DecodeFileTraced(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := s.users.SaveResult(ctx, userID, result); err != nil {
		return nil, err
	}

	var annotated []byte
	if s.annotator != nil {
		annotated, err = s.annotator.Annotate(trace.Image, trace.Regions, trace.Bubbles)
		if err != nil {
			s.log.Warning("annotate sheet: %v", err)
		}
	}
	return &ScanOutput{Result: result, Annotated: annotated}, nil
}

func (s *ScanService) writeTemp(photo []byte) (string, error) {
	f, err := os.CreateTemp(s.tempDir, "sheet-*.jpg")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(photo); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}
