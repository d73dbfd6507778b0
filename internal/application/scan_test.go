package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
	"omr-bot/internal/infrastructure/storage"
	"omr-bot/internal/logger"
)

type recordingAnnotator struct {
	regions []entity.RegionType
	bubbles int
}

func (a *recordingAnnotator) Annotate(img image.Image, regions []entity.Region, bubbles []entity.Bubble) ([]byte, error) {
	for _, r := range regions {
		a.regions = append(a.regions, r.Type)
	}
	a.bubbles = len(bubbles)
	return []byte("jpeg"), nil
}

func encodePNG(t *testing.T, p *page) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, p.img))
	return buf.Bytes()
}

func newTestScanService(t *testing.T, annotator port.SheetAnnotator) (*ScanService, *UserService, string) {
	t.Helper()
	dir := t.TempDir()
	users := NewUserService(storage.NewMemoryUserRepository())
	svc := NewScanService(users, newTestDecoder(&blobDetector{}), annotator, dir, logger.Discard())
	return svc, users, dir
}

func TestScanService_ProcessSheetPhoto(t *testing.T) {
	annotator := &recordingAnnotator{}
	svc, users, dir := newTestScanService(t, annotator)
	ctx := context.Background()

	_, err := users.BeginScan(ctx, 1, 10)
	require.NoError(t, err)

	out, err := svc.ProcessSheetPhoto(ctx, 1, 10, encodePNG(t, sheetPage()))
	require.NoError(t, err)
	requireSheetResult(t, out.Result)
	require.Equal(t, []byte("jpeg"), out.Annotated)
	// оба блока ответов лежат в одной области
	require.ElementsMatch(t, []entity.RegionType{entity.IDBlock, entity.CodeBlock, entity.AnswerBlock}, annotator.regions)
	// 60 + 30 + 80 отметок
	require.Equal(t, 170, annotator.bubbles)

	user, err := users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
	require.Same(t, out.Result, user.LastResult)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestScanService_FailureStillRemovesTempFile(t *testing.T) {
	svc, users, dir := newTestScanService(t, nil)
	ctx := context.Background()

	_, err := svc.ProcessSheetPhoto(ctx, 2, 20, encodePNG(t, newPage(100, 100, color.Black)))
	require.ErrorIs(t, err, entity.ErrNoOrientation)

	_, err = svc.ProcessSheetPhoto(ctx, 2, 20, []byte("not an image"))
	require.ErrorIs(t, err, entity.ErrImageLoad)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	last, err := users.LastResult(ctx, 2, 20)
	require.NoError(t, err)
	require.Nil(t, last)
}
