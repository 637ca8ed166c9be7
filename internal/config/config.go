package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	Kafka  KafkaConfig
	Stock  StockConfig
}

type ServerConfig struct {
	AppEnv string
	Port   string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// StockConfig holds the caller-overridable threshold defaults used when an
// analytics request does not supply its own.
type StockConfig struct {
	UnderstockThreshold int
	OverstockThreshold  int
	GeneratorSeed       int64
}

// LoadEnv reads configuration from environment variables, applying defaults
// for anything unset.
func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "development"),
			Port:   getEnv("PORT", "3000"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "warehouse-events"),
		},
		Stock: StockConfig{
			UnderstockThreshold: getEnvInt("UNDERSTOCK_THRESHOLD", 5),
			OverstockThreshold:  getEnvInt("OVERSTOCK_THRESHOLD", 15),
			GeneratorSeed:       int64(getEnvInt("GENERATOR_SEED", 0)),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
