package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

// Client адаптер внешнего сервиса инференса с моделями областей и отметок.
// Сервис принимает изображение в multipart и возвращает прямоугольники в JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ port.RegionDetector = (*Client)(nil)
	_ port.BubbleDetector = (*Client)(nil)
)

// box формат прямоугольника в ответе сервиса
type box struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Class      int     `json:"class"`
	Confidence float64 `json:"confidence"`
}

// NewClient создаёт клиента сервиса инференса
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// DetectRegions отправляет целое изображение в модель областей
func (c *Client) DetectRegions(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	return c.predict(ctx, c.baseURL+"/regions", img)
}

// DetectBubbles отправляет вырезанную область в модель отметок
func (c *Client) DetectBubbles(ctx context.Context, crop image.Image, confidence float64) ([]entity.Detection, error) {
	url := c.baseURL + "/bubbles?conf=" + strconv.FormatFloat(confidence, 'f', -1, 64)
	return c.predict(ctx, url, crop)
}

// CheckHealth проверяет доступность сервиса
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service unhealthy: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) predict(ctx context.Context, url string, img image.Image) ([]entity.Detection, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "image.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if err := png.Encode(part, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Detections []box `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	detections := make([]entity.Detection, 0, len(result.Detections))
	for _, d := range result.Detections {
		detections = append(detections, entity.Detection{
			Box:        entity.Box{X1: d.X, Y1: d.Y, X2: d.X + d.Width, Y2: d.Y + d.Height},
			Label:      d.Class,
			Confidence: d.Confidence,
		})
	}
	return detections, nil
}
