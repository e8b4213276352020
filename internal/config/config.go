package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingConfiguration marks a required identifier that could not be
// resolved from the file or the environment.
var ErrMissingConfiguration = errors.New("missing configuration")

type Config struct {
	LogLevel string         `json:"log_level" yaml:"log_level"`
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline"`
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	Notifier NotifierConfig `json:"notifier" yaml:"notifier"`
}

type PipelineConfig struct {
	// TransformedBucket receives normalized batch documents; writing there is
	// what triggers the calculate stage.
	TransformedBucket string `json:"transformed_bucket" yaml:"transformed_bucket"`
}

type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	Table  string `json:"table" yaml:"table"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

type NotifierConfig struct {
	Driver   string      `json:"driver" yaml:"driver"`
	TopicARN string      `json:"topic_arn" yaml:"topic_arn"`
	Kafka    KafkaConfig `json:"kafka" yaml:"kafka"`
}

type KafkaConfig struct {
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Storage:  StorageConfig{Driver: "sqlite", DSN: "file:energycoach.db?_pragma=busy_timeout(5000)", Table: "summaries"},
		Notifier: NotifierConfig{Driver: "log"},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	var decodeErr error
	if looksLikeJSON(trimmed) {
		decodeErr = json.Unmarshal([]byte(trimmed), cfg)
	} else {
		decodeErr = yaml.Unmarshal([]byte(trimmed), cfg)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	applyDefaults(cfg)
	return cfg, nil
}

// FromEnv resolves the configuration the deployment platform injects into the
// pipeline functions. The fallback variable names match earlier deployments.
func FromEnv() *Config {
	cfg := DefaultConfig()
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.Pipeline.TransformedBucket = os.Getenv("TRANSFORMED_JSON_BUCKET")
	cfg.Storage.Driver = "dynamodb"
	cfg.Storage.Table = envOr("CALCULATED_ENERGY_TABLE_NAME", os.Getenv("CALCULATED_ENERGY_TABLE"))
	cfg.Notifier.Driver = "sns"
	cfg.Notifier.TopicARN = envOr("SNS_TOPIC_CALCULATOR_SUMMARY", os.Getenv("SNS_TOPIC_CALCULATOR_SUM"))
	return cfg
}

func looksLikeJSON(s string) bool {
	for _, ch := range s {
		if ch == '{' || ch == '[' {
			return true
		}
		if ch > ' ' {
			return false
		}
	}
	return false
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.Table == "" {
		cfg.Storage.Table = "summaries"
	}
	if cfg.Notifier.Driver == "" {
		cfg.Notifier.Driver = "log"
	}
}

// ValidateTransform checks the identifiers the transform stage needs.
func (c *Config) ValidateTransform() error {
	if c.Pipeline.TransformedBucket == "" {
		return fmt.Errorf("%w: pipeline.transformed_bucket (TRANSFORMED_JSON_BUCKET)", ErrMissingConfiguration)
	}
	return nil
}

// ValidateCalculate checks the identifiers the calculate stage needs.
func (c *Config) ValidateCalculate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "dynamodb":
		if c.Storage.Table == "" {
			return fmt.Errorf("%w: storage.table (CALCULATED_ENERGY_TABLE_NAME)", ErrMissingConfiguration)
		}
	case "sqlite", "postgres", "postgresql":
		if c.Storage.DSN == "" {
			return fmt.Errorf("%w: storage.dsn", ErrMissingConfiguration)
		}
	case "memory":
	default:
		return fmt.Errorf("%w: storage.driver %q unsupported", ErrMissingConfiguration, c.Storage.Driver)
	}
	switch strings.ToLower(c.Notifier.Driver) {
	case "sns":
		if c.Notifier.TopicARN == "" {
			return fmt.Errorf("%w: notifier.topic_arn (SNS_TOPIC_CALCULATOR_SUMMARY)", ErrMissingConfiguration)
		}
	case "kafka":
		if len(c.Notifier.Kafka.Brokers) == 0 || c.Notifier.Kafka.Topic == "" {
			return fmt.Errorf("%w: notifier.kafka requires brokers and topic", ErrMissingConfiguration)
		}
	case "log", "memory":
	default:
		return fmt.Errorf("%w: notifier.driver %q unsupported", ErrMissingConfiguration, c.Notifier.Driver)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
