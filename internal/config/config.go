package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Log     LogConfig
	Chat    ChatConfig
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Catalog: loadCatalogConfig(),
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			File:  strings.TrimSpace(os.Getenv("LOG_FILE")),
		},
		Chat: chat,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// ":8080" and "127.0.0.1:8080" are passed through.
		return ServerConfig{Addr: port}, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// CatalogConfig points at the simulation data files.
type CatalogConfig struct {
	ConfigPath string
	BrandPath  string
}

func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		ConfigPath: getEnvOrDefault("CATALOG_CONFIG_PATH", "data/simulation_config.json"),
		BrandPath:  getEnvOrDefault("CATALOG_BRAND_PATH", "data/brand_data.txt"),
	}
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string
	File  string
}

// ChatConfig tunes how replies are presented.
type ChatConfig struct {
	ResponseDelay time.Duration
	Debug         bool
}

func loadChatConfig() (ChatConfig, error) {
	delay := 500 * time.Millisecond
	override, err := parseOptionalIntEnv("CHAT_RESPONSE_DELAY_MS")
	if err != nil {
		return ChatConfig{}, err
	}
	if override != nil {
		if *override < 0 {
			return ChatConfig{}, fmt.Errorf("invalid CHAT_RESPONSE_DELAY_MS value %d: must not be negative", *override)
		}
		delay = time.Duration(*override) * time.Millisecond
	}

	debug, err := parseBoolEnv("CHAT_DEBUG", false)
	if err != nil {
		return ChatConfig{}, err
	}

	return ChatConfig{ResponseDelay: delay, Debug: debug}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
