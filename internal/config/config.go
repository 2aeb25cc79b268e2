package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	filePath := os.Getenv(envKey + "_FILE")
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	os.Setenv(envKey, strings.TrimSpace(string(data)))
}

type Config struct {
	Server ServerConfig
	RunPod RunPodConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	BodyLimit int // bytes
}

type RunPodConfig struct {
	APIKey     string
	EndpointID string
	BaseURL    string
	Timeout    int // seconds
}

// IsConfigured reports whether both RunPod credentials are present.
func (c RunPodConfig) IsConfigured() bool {
	return c.APIKey != "" && c.EndpointID != ""
}

func Load() (*Config, error) {
	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("RUNPOD_API_KEY")
	readSecret("RUNPOD_ENDPOINT_ID")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("server.body_limit", "SERVER_BODY_LIMIT")
	_ = viper.BindEnv("runpod.api_key", "RUNPOD_API_KEY")
	_ = viper.BindEnv("runpod.endpoint_id", "RUNPOD_ENDPOINT_ID")
	_ = viper.BindEnv("runpod.base_url", "RUNPOD_BASE_URL")
	_ = viper.BindEnv("runpod.timeout", "RUNPOD_TIMEOUT")

	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("server.body_limit", 1024*1024)

	// runsync blocks until the worker finishes, so the timeout is generous
	viper.SetDefault("runpod.base_url", "https://api.runpod.ai")
	viper.SetDefault("runpod.timeout", 600)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetString("server.port"),
			Env:       viper.GetString("server.env"),
			LogLevel:  viper.GetString("server.log_level"),
			BodyLimit: viper.GetInt("server.body_limit"),
		},
		RunPod: RunPodConfig{
			APIKey:     viper.GetString("runpod.api_key"),
			EndpointID: viper.GetString("runpod.endpoint_id"),
			BaseURL:    strings.TrimRight(viper.GetString("runpod.base_url"), "/"),
			Timeout:    viper.GetInt("runpod.timeout"),
		},
	}

	return cfg, nil
}
