package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Receipt  ReceiptConfig  `yaml:"receipt"`
	Retry    RetryConfig    `yaml:"retry"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type PostgresConfig struct {
	Host    string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	DbName  string `yaml:"db_name" env:"POSTGRES_DB"`
	User    string `yaml:"user" env:"POSTGRES_USER"`
	Pwd     string `yaml:"password" env:"POSTGRES_PASSWORD"`
	SslMode string `yaml:"sslmode" env-default:"disable"`
}

func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		p.Host, p.Port, p.User, p.DbName, p.Pwd, p.SslMode)
}

type KafkaConfig struct {
	BrokerList      []string `yaml:"broker_list" env:"KAFKA_BROKERS"`
	OrderEventTopic string   `yaml:"order_event_topic" env-default:"orders"`
	DeadLetterTopic string   `yaml:"dead_letter_topic" env-default:"orders_dlq"`
	ConsumerGroup   string   `yaml:"consumer_group" env-default:"inventory_service"`
}

type ReceiptConfig struct {
	Dir string `yaml:"dir" env:"RECEIPT_DIR" env-default:"./receipts"`
}

type RetryConfig struct {
	Attempts      int `yaml:"attempts" env-default:"3"`
	BackoffMillis int `yaml:"backoff_millis" env-default:"100"`
}

func (r RetryConfig) Backoff() time.Duration {
	return time.Duration(r.BackoffMillis) * time.Millisecond
}

func InitConfig() Config {
	configPath := getConfigPath()

	if configPath == "" {
		panic("config path is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		panic("read config: " + err.Error())
	}

	return cfg
}

func Load(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
