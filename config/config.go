package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguages      string
	DocAIBaseURL      string
	DocAITimeout      time.Duration
	DatabaseDSN       string
	MaxFileSize       int64
	MinTextLength     int
}

// LoadConfig reads the environment, after loading a local .env when one is
// present. Missing keys fall back to defaults that work in the dev image.
func LoadConfig() *Config {
	// A missing .env is the normal case in production.
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		OCRLanguages:      getEnv("OCR_LANGUAGES", "por+fra+eng"),
		DocAIBaseURL:      getEnv("DOCAI_BASE_URL", ""),
		DocAITimeout:      getDuration("DOCAI_TIMEOUT", 30*time.Second),
		DatabaseDSN:       getEnv("DATABASE_DSN", ""),
		MaxFileSize:       getInt64("MAX_FILE_SIZE", 10*1024*1024),
		MinTextLength:     int(getInt64("MIN_TEXT_LENGTH", 40)),
	}
}

// NewLogger builds the process logger. LOG_LEVEL and LOG_FORMAT control
// verbosity and encoding; the default is info-level JSON.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsed, err := zap.ParseAtomicLevel(lvl)
		if err != nil {
			return nil, err
		}
		cfg.Level = parsed
	}
	if os.Getenv("LOG_FORMAT") == "console" {
		cfg = zap.NewDevelopmentConfig()
	}

	return cfg.Build()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
