package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string `validate:"required"`
	DBDSN          string `validate:"required"`
	Environment    string `validate:"oneof=development production"`
	MigrationsPath string `validate:"required"`

	// Длительность для старых броней, у которых не сохранена длительность
	DefaultSlotDurationMinutes int `validate:"gt=0"`

	// Максимальный размер страницы архива
	ArchiveMaxPageSize int `validate:"gt=0"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		HTTPAddr:                   getEnv("HTTP_ADDR", ":8080"),
		DBDSN:                      os.Getenv("DB_DSN"),
		Environment:                getEnv("ENV", "development"),
		MigrationsPath:             getEnv("MIGRATIONS_PATH", "migrations"),
		DefaultSlotDurationMinutes: getEnvInt("DEFAULT_SLOT_DURATION_MINUTES", 60),
		ArchiveMaxPageSize:         getEnvInt("ARCHIVE_MAX_PAGE_SIZE", 50),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value %q for %s, using default %d", value, key, fallback)
		return fallback
	}

	return parsed
}
