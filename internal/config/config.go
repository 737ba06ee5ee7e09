package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	Redis    *Redisconfig
	Srv      *Serviceconfig
	App      *Appconfig
	Log      *Loggerconfig
}

type DBconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RabbitMqconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Redisconfig struct {
	Host string
	Port int
	DB   int
}

type Serviceconfig struct {
	AssistServicePort string
	AuthServicePort   string
}

type Appconfig struct {
	JwtSecret string
}

type Loggerconfig struct {
	Level string
}

// New reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func New() (*Config, error) {
	_ = godotenv.Load()

	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			fmt.Printf("invalid %s, using default %d\n", key, def)
			return def
		}
		return val
	}

	cnf := &Config{
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "roadassist_user"),
			Password: getEnv("DB_PASSWORD", "roadassist_pass"),
			Database: getEnv("DB_NAME", "roadassist_db"),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
		Redis: &Redisconfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnvInt("REDIS_PORT", 6379),
			DB:   getEnvInt("REDIS_DB", 0),
		},
		Srv: &Serviceconfig{
			AssistServicePort: getEnv("ASSIST_SERVICE_PORT", "3000"),
			AuthServicePort:   getEnv("AUTH_SERVICE_PORT", "3001"),
		},
		App: &Appconfig{
			JwtSecret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}
