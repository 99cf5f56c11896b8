package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultPort         = "8080"
	defaultMeshyBaseURL = "https://api.meshy.ai/openapi/v1"
	defaultFashnBaseURL = "https://api.fashn.ai/v1"
)

// Config holds process-wide settings loaded once at startup and passed by
// injection. Nothing reads provider credentials from the environment after
// Load returns.
type Config struct {
	Port         string
	MeshyAPIKey  string
	FashnAPIKey  string
	MeshyBaseURL string
	FashnBaseURL string
}

// Load reads .env (if present) then the process environment. Missing
// provider keys are an error: the server refuses to start rather than serve
// requests it can only fail.
func Load() (*Config, error) {
	// .env is a local-dev convenience; absence is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getenv("PORT", defaultPort),
		MeshyAPIKey:  os.Getenv("MESHY_API_KEY"),
		FashnAPIKey:  os.Getenv("FASHN_API_KEY"),
		MeshyBaseURL: getenv("MESHY_BASE_URL", defaultMeshyBaseURL),
		FashnBaseURL: getenv("FASHN_BASE_URL", defaultFashnBaseURL),
	}

	if cfg.MeshyAPIKey == "" {
		return nil, fmt.Errorf("MESHY_API_KEY is not set")
	}
	if cfg.FashnAPIKey == "" {
		return nil, fmt.Errorf("FASHN_API_KEY is not set")
	}
	return cfg, nil
}

// KeysConfigured reports whether both provider credentials are present.
func (c *Config) KeysConfigured() bool {
	return c.MeshyAPIKey != "" && c.FashnAPIKey != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
