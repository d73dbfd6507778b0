package inference

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
)

func TestClient_DetectBubbles(t *testing.T) {
	var gotConf string
	var gotSize image.Point
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bubbles", r.URL.Path)
		gotConf = r.URL.Query().Get("conf")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		img, err := png.Decode(file)
		require.NoError(t, err)
		gotSize = img.Bounds().Size()

		json.NewEncoder(w).Encode(map[string]any{
			"detections": []map[string]any{
				{"x": 5, "y": 6, "width": 10, "height": 12, "class": 0, "confidence": 0.9},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	dets, err := c.DetectBubbles(context.Background(), image.NewGray(image.Rect(0, 0, 30, 20)), 0.35)
	require.NoError(t, err)
	require.Equal(t, "0.35", gotConf)
	require.Equal(t, image.Pt(30, 20), gotSize)
	require.Equal(t, []entity.Detection{{
		Box:        entity.Box{X1: 5, Y1: 6, X2: 15, Y2: 18},
		Label:      0,
		Confidence: 0.9,
	}}, dets)
}

func TestClient_DetectRegionsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/regions", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.DetectRegions(context.Background(), image.NewGray(image.Rect(0, 0, 4, 4)))
	require.Error(t, err)
}

func TestClient_CheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL, time.Second).CheckHealth(context.Background()))
}
