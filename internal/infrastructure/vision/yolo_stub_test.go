//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
)

func TestYOLODetector_UnavailableWithoutGoCV(t *testing.T) {
	_, err := NewYOLODetector("models/regions.onnx")
	require.ErrorIs(t, err, entity.ErrDetectorUnavailable)

	d := &YOLODetector{}
	_, err = d.DetectRegions(context.Background(), markedImage(4, 4))
	require.ErrorIs(t, err, entity.ErrDetectorUnavailable)

	_, err = NewAnnotator()
	require.ErrorIs(t, err, entity.ErrDetectorUnavailable)
}
