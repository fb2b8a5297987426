package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type CountryConfig struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	CountryDB  `yaml:"country_db"`
	LogConfig  `yaml:"log_config"`
	Sources    `yaml:"sources"`
	Cache      `yaml:"cache"`
	KafkaService `yaml:"kafka-service"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type CountryDB struct {
	Dsn            string `yaml:"dsn" env:"COUNTRY_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type Sources struct {
	CountriesAPIURL     string `yaml:"countries_api_url" env:"COUNTRIES_API_URL" env-default:"https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"`
	ExchangeRatesAPIURL string `yaml:"exchange_rates_api_url" env:"EXCHANGE_RATES_API_URL" env-default:"https://open.er-api.com/v6/latest/USD"`
}

type Cache struct {
	Dir string `yaml:"dir" env:"CACHE_DIR" env-default:"cache"`
}

type KafkaService struct {
	Enabled bool   `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"KAFKA_HOST"`
	Port    string `yaml:"port" env:"KAFKA_PORT"`
	Topic   string `yaml:"topic" env:"KAFKA_TOPIC" env-default:"country-refresh-events"`
}

func MustLoad() *CountryConfig {

	// Processing env config variable and file
	configPath := os.Getenv("COUNTRY_CONFIG_PATH")

	var cfg CountryConfig
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("failed to read config from env: %v", err)
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
