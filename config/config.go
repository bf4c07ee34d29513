package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Strategy string `env:"MASKFLOW_STRATEGY" envDefault:"dense"`

	ModelID        string `env:"MASKFLOW_MODEL_ID"         envDefault:"dense-neural-flow"`
	WeightsDir     string `env:"MASKFLOW_WEIGHTS_DIR"      envDefault:".cache/weights"`
	WeightsBaseURL string `env:"MASKFLOW_WEIGHTS_BASE_URL" envDefault:""`
	NetInputWidth  int    `env:"MASKFLOW_NET_INPUT_WIDTH"  envDefault:"480"`
	NetInputHeight int    `env:"MASKFLOW_NET_INPUT_HEIGHT" envDefault:"360"`

	MaxFeatures int `env:"MASKFLOW_MAX_FEATURES" envDefault:"200"`

	OnTrackingLost    string `env:"MASKFLOW_ON_TRACKING_LOST"    envDefault:"continue"`
	OnInferenceFailed string `env:"MASKFLOW_ON_INFERENCE_FAILED" envDefault:"reuse"`

	FPS         int    `env:"MASKFLOW_FPS"          envDefault:"25"`
	MetricsPort int    `env:"MASKFLOW_METRICS_PORT" envDefault:"8083"`
	LogLevel    string `env:"LOG_LEVEL"             envDefault:"info"`
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Strategy {
	case "bbox", "dense", "neural":
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	switch c.OnTrackingLost {
	case "continue", "fail":
	default:
		return fmt.Errorf("unknown tracking-lost policy %q", c.OnTrackingLost)
	}
	switch c.OnInferenceFailed {
	case "reuse", "abort":
	default:
		return fmt.Errorf("unknown inference-failure policy %q", c.OnInferenceFailed)
	}
	if c.NetInputWidth <= 0 || c.NetInputHeight <= 0 {
		return fmt.Errorf("invalid net input size %dx%d", c.NetInputWidth, c.NetInputHeight)
	}
	return nil
}
