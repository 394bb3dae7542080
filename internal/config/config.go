package config

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultUploadMaxFileSize = 10 * 1024 * 1024 // 10 MB
	defaultUploadMaxFiles    = 10
	defaultCacheTTL          = 300 // seconds
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	JWTPublicKey string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	UploadMaxFileSize int64
	UploadMaxFiles    int
}

var requiredKeys = []string{
	"MARIADB_DSN",
	"MARIADB_MAX_OPEN_CONN",
	"MARIADB_MAX_IDLE_CONNS",
	"MARIADB_CONN_MAX_LIFETIME",
	"SERVER_PORT",
	"MINIO_ENDPOINT",
	"MINIO_ACCESS_KEY",
	"MINIO_SECRET_KEY",
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info(context.Background(), "No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnf(context.Background(), "could not read .env file: %v", err)
	}

	for _, key := range requiredKeys {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	maxFileSize := int64(intOr("UPLOAD_MAX_FILE_SIZE", defaultUploadMaxFileSize))
	if maxFileSize <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_FILE_SIZE must be positive, got %d", maxFileSize)
	}
	maxFiles := intOr("UPLOAD_MAX_FILES", defaultUploadMaxFiles)
	if maxFiles <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_FILES must be positive, got %d", maxFiles)
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),

		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		CacheTTL:      time.Duration(intOr("CACHE_TTL", defaultCacheTTL)) * time.Second,

		UploadMaxFileSize: maxFileSize,
		UploadMaxFiles:    maxFiles,
	}, nil
}

func intOr(key string, def int) int {
	if !viper.IsSet(key) {
		return def
	}
	return viper.GetInt(key)
}
