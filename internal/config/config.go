package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type key string

const (
	KeyUUID    = key("uuid")
	KeyLogger  = key("logger")
	KeyMetrics = key("metrics")
)

type Config struct {
	Service    Service
	Postgres   Postgres
	Centrifuge Centrifuge
	OpenAI     OpenAI
	Kafka      Kafka
	Metrics    Metrics
	Logger     Logger
	Platform   Platform
}

type Service struct {
	Port      string `env:"ASSISTANT_SERVICE_PORT" env-default:"8080"`
	Name      string `env:"ASSISTANT_SERVICE_NAME" env-default:"assistant-service"`
	JWTSecret string `env:"ASSISTANT_SERVICE_JWT_SECRET"`
}

type Postgres struct {
	User     string `env:"ASSISTANT_SERVICE_POSTGRES_USER"`
	Password string `env:"ASSISTANT_SERVICE_POSTGRES_PASSWORD"`
	Database string `env:"ASSISTANT_SERVICE_POSTGRES_DB"`
	Host     string `env:"ASSISTANT_SERVICE_POSTGRES_HOST"`
	Port     string `env:"ASSISTANT_SERVICE_POSTGRES_PORT"`
}

type Centrifuge struct {
	BaseURL   string        `env:"CENTRIFUGE_BASE_URL"`
	APIKey    string        `env:"CENTRIFUGE_API_KEY"`
	JWTSecret string        `env:"CENTRIFUGE_JWT_SECRET"`
	Timeout   time.Duration `env:"CENTRIFUGE_TIMEOUT" env-default:"5s"`
}

type OpenAI struct {
	BaseURL     string        `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model       string        `env:"OPENAI_MODEL" env-default:"gpt-4o"`
	Temperature float32       `env:"OPENAI_TEMPERATURE" env-default:"0.7"`
	MaxTokens   int           `env:"OPENAI_MAX_TOKENS" env-default:"2048"`
	Timeout     time.Duration `env:"OPENAI_TIMEOUT" env-default:"60s"`
}

type Kafka struct {
	Host      string `env:"KAFKA_HOST"`
	Port      string `env:"KAFKA_PORT"`
	UserTopic string `env:"KAFKA_USER_TOPIC"`
}

type Metrics struct {
	Host string `env:"GRAFANA_HOST"`
	Port int    `env:"GRAFANA_PORT"`
}

type Logger struct {
	Host string `env:"LOGGER_HOST"`
	Port string `env:"LOGGER_PORT"`
}

type Platform struct {
	Env string `env:"ENV"`
}

func MustLoad() *Config {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("failed to read env config: %v", err)
	}
	return cfg
}
