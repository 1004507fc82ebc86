package config

import (
	"time"

	"go-catalog-ms/pkg/database"
	"go-catalog-ms/pkg/logger"

	"github.com/spf13/viper"
)

type Config struct {
	AppName string `mapstructure:"APP_NAME"`
	Port    string `mapstructure:"PORT"`

	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBTimeZone     string `mapstructure:"DB_TIMEZONE"`
	DBLogLevel     string `mapstructure:"DB_LOG_LEVEL"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	AutoMigrate    bool   `mapstructure:"AUTO_MIGRATE"`

	KafkaBrokers      []string      `mapstructure:"KAFKA_BROKERS"`
	KafkaGroupID      string        `mapstructure:"KAFKA_GROUP_ID"`
	KafkaCommandTopic string        `mapstructure:"KAFKA_COMMAND_TOPIC"`
	KafkaEventTopic   string        `mapstructure:"KAFKA_EVENT_TOPIC"`
	WorkerPoolSize    int           `mapstructure:"WORKER_POOL_SIZE"`
	HandlerTimeout    time.Duration `mapstructure:"HANDLER_TIMEOUT"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	TreeCacheTTL  time.Duration `mapstructure:"TREE_CACHE_TTL"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	LogFile   string `mapstructure:"LOG_FILE"`
}

var defaults = map[string]interface{}{
	"APP_NAME":            "Catalog Service",
	"PORT":                "3000",
	"DATABASE_URL":        "",
	"DB_HOST":             "localhost",
	"DB_USER":             "postgres",
	"DB_PASSWORD":         "",
	"DB_NAME":             "catalog",
	"DB_PORT":             "5432",
	"DB_TIMEZONE":         "UTC",
	"DB_LOG_LEVEL":        "warn",
	"DB_MAX_IDLE_CONNS":   10,
	"DB_MAX_OPEN_CONNS":   100,
	"AUTO_MIGRATE":        true,
	"KAFKA_BROKERS":       []string{"localhost:9092"},
	"KAFKA_GROUP_ID":      "catalog-service",
	"KAFKA_COMMAND_TOPIC": "catalog.commands",
	"KAFKA_EVENT_TOPIC":   "catalog.events",
	"WORKER_POOL_SIZE":    32,
	"HANDLER_TIMEOUT":     30 * time.Second,
	"REDIS_ADDR":          "",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"TREE_CACHE_TTL":      5 * time.Minute,
	"JWT_SECRET":          "",
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "console",
	"LOG_FILE":            "",
}

// Load reads the process environment (after godotenv has merged .env into it).
// Every key needs a default so viper knows to look it up in the environment.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Database() database.Options {
	return database.Options{
		DSN:          c.DatabaseURL,
		Host:         c.DBHost,
		User:         c.DBUser,
		Password:     c.DBPassword,
		Name:         c.DBName,
		Port:         c.DBPort,
		TimeZone:     c.DBTimeZone,
		LogLevel:     c.DBLogLevel,
		MaxIdleConns: c.DBMaxIdleConns,
		MaxOpenConns: c.DBMaxOpenConns,
	}
}

func (c *Config) Logger() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat, File: c.LogFile}
}
