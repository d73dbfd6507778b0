package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"omr-bot/internal/domain/sheet"
)

// Backend реализация детекторов
type Backend string

const (
	BackendHTTP Backend = "http" // внешний сервис инференса
	BackendGoCV Backend = "gocv" // модели ONNX внутри процесса
)

type Config struct {
	TelegramToken string

	Backend          Backend
	InferenceURL     string        // базовый URL сервиса инференса
	InferenceTimeout time.Duration // таймаут одного запроса к сервису
	RegionModelPath  string        // ONNX модель областей
	BubbleModelPath  string        // ONNX модель отметок

	LogPrefix     string
	DecodeWorkers int    // сколько бланков распознаётся параллельно
	TempDir       string // куда бот складывает скачанные фото

	Thresholds sheet.Thresholds
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	def := sheet.DefaultThresholds()
	axis, err := sheet.ParseLayoutAxis(getEnv("ID_CODE_AXIS", string(def.Axis)))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		Backend:          Backend(getEnv("DETECTOR_BACKEND", string(BackendHTTP))),
		InferenceURL:     getEnv("INFERENCE_URL", "http://localhost:8000"),
		InferenceTimeout: time.Duration(getEnvAsInt("INFERENCE_TIMEOUT_SEC", 30)) * time.Second,
		RegionModelPath:  getEnv("REGION_MODEL_PATH", filepath.Join(".", "models", "regions.onnx")),
		BubbleModelPath:  getEnv("BUBBLE_MODEL_PATH", filepath.Join(".", "models", "bubbles.onnx")),
		LogPrefix:        getEnv("LOG_PREFIX", "omr "),
		DecodeWorkers:    getEnvAsInt("DECODE_WORKERS", 2),
		TempDir:          getEnv("TEMP_DIR", os.TempDir()),
		Thresholds: sheet.Thresholds{
			DefaultConfidence: getEnvAsFloat("CONFIDENCE_DEFAULT", def.DefaultConfidence),
			RelaxedConfidence: getEnvAsFloat("CONFIDENCE_RELAXED", def.RelaxedConfidence),
			MinBubbles:        getEnvAsInt("MIN_BUBBLES", def.MinBubbles),
			AreaLow:           getEnvAsFloat("AREA_LOW", def.AreaLow),
			AreaHigh:          getEnvAsFloat("AREA_HIGH", def.AreaHigh),
			CellLow:           getEnvAsFloat("CELL_LOW", def.CellLow),
			CellHigh:          getEnvAsFloat("CELL_HIGH", def.CellHigh),
			GroupGap:          getEnvAsFloat("GROUP_GAP", def.GroupGap),
			Axis:              axis,
		},
	}

	switch cfg.Backend {
	case BackendHTTP, BackendGoCV:
	default:
		return nil, fmt.Errorf("unknown DETECTOR_BACKEND %q", cfg.Backend)
	}
	if cfg.DecodeWorkers < 1 {
		cfg.DecodeWorkers = 1
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
