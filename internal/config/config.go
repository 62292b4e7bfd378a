package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port           string
	LogLevel       string
	Environment    string
	MetricsEnabled bool
}

func Load() Config {
	return Config{
		Port:           getenv("PORT", "8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		Environment:    getenv("ENVIRONMENT", "development"),
		MetricsEnabled: getbool("METRICS_ENABLED", true),
	}
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(getenv(k, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return b
}
