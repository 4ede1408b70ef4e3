package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Sources SourcesConfig
	OpenAI  OpenAIConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type SourcesConfig struct {
	SeismicEnabled      bool
	SeismicURL          string
	SeismicPollInterval time.Duration
	SeismicMinMagnitude float64
	SeismicWindowDays   int

	FloodEnabled      bool
	FloodURL          string // empty: fall back to built-in basin data
	FloodPollInterval time.Duration

	HeatEnabled      bool
	HeatURL          string
	HeatAPIKey       string
	HeatPollInterval time.Duration
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 50),
		},
		Sources: SourcesConfig{
			SeismicEnabled:      getEnvBool("SEISMIC_ENABLED", true),
			SeismicURL:          getEnv("SEISMIC_URL", "https://earthquake.usgs.gov/fdsnws/event/1/query"),
			SeismicPollInterval: getEnvDuration("SEISMIC_POLL_INTERVAL", 5*time.Minute),
			SeismicMinMagnitude: getEnvFloat("SEISMIC_MIN_MAGNITUDE", 2.5),
			SeismicWindowDays:   getEnvInt("SEISMIC_WINDOW_DAYS", 7),
			FloodEnabled:        getEnvBool("FLOOD_ENABLED", true),
			FloodURL:            getEnv("FLOOD_URL", ""),
			FloodPollInterval:   getEnvDuration("FLOOD_POLL_INTERVAL", 5*time.Minute),
			HeatEnabled:         getEnvBool("HEAT_ENABLED", true),
			HeatURL:             getEnv("HEAT_URL", "https://api.openweathermap.org/data/2.5/weather"),
			HeatAPIKey:          getEnv("OPENWEATHERMAP_API_KEY", ""),
			HeatPollInterval:    getEnvDuration("HEAT_POLL_INTERVAL", 5*time.Minute),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/disasterwatch.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Sources.SeismicPollInterval < time.Minute {
		return fmt.Errorf("seismic poll interval must be at least 1 minute")
	}
	if c.Sources.FloodPollInterval < time.Minute {
		return fmt.Errorf("flood poll interval must be at least 1 minute")
	}
	if c.Sources.HeatPollInterval < time.Minute {
		return fmt.Errorf("heat poll interval must be at least 1 minute")
	}
	if c.Sources.SeismicWindowDays < 1 {
		return fmt.Errorf("seismic window must be at least 1 day")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
