package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/Hunter19823/Minecraft-Schema-Gen/aggregate"
)

type config struct {
	LogLevel    string
	Addr        string
	Title       string
	Description string
	Version     string
	MaxEnum     int
	ReadLimit   int
	PublishURL  string
	APIKey      string
}

func loadConfig() config {
	return config{
		LogLevel:    getEnv("SCHEMAGEN_LOG", "info"),
		Addr:        getEnv("SCHEMAGEN_ADDR", ":8080"),
		Title:       getEnv("SCHEMAGEN_TITLE", "Inferred Schemas"),
		Description: getEnv("SCHEMAGEN_DESCRIPTION", "Schemas inferred from uploaded JSON documents"),
		Version:     getEnv("SCHEMAGEN_VERSION", "1.0.0"),
		MaxEnum:     getEnvInt("SCHEMAGEN_MAX_ENUM", 0),
		ReadLimit:   getEnvInt("SCHEMAGEN_READ_LIMIT", 64),
		PublishURL:  getEnv("SCHEMAGEN_PUBLISH_URL", ""),
		APIKey:      getEnv("SCHEMAGEN_APIKEY", ""),
	}
}

func (c config) builder() *aggregate.Builder {
	b := aggregate.NewBuilder(c.Title, c.Description, c.Version)
	b.Emitter.MaxEnum = c.MaxEnum
	return b
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		slog.Warn("ignoring malformed config option", "key", key, "value", val, "err", err)
		return fallback
	}
	return n
}
