package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	LogLevel    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Image storage
	ImageStore string
	MediaDir   string
	MediaURL   string
	S3Bucket   string
	AWSRegion  string

	// API behaviour
	PageSize           int
	RecipeCreateLimit  int
	RecipeCreateWindow time.Duration
}

// secretKeys are the values that may be supplied as Docker secrets
var secretKeys = []string{
	"db_user",
	"db_password",
	"jwt_secret",
	"redis_password",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("cors_origins", "http://localhost:3000,http://frontend:3000")
	v.SetDefault("log_level", "info")

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "foodgram")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_path", "foodgram.db")

	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)

	v.SetDefault("token_ttl", "24h")

	v.SetDefault("image_store", "local")
	v.SetDefault("media_dir", "media")
	v.SetDefault("media_url", "/media")
	v.SetDefault("aws_region", "us-east-1")

	v.SetDefault("page_size", 6)
	v.SetDefault("recipe_create_limit", 30)
	v.SetDefault("recipe_create_window", "1h")
}

// LoadConfig builds the configuration from defaults, an optional settings
// file, environment variables and Docker secrets, in that order.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("settings")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		Environment:        env,
		ServerPort:         v.GetString("server_port"),
		ServerHost:         v.GetString("server_host"),
		CORSOrigins:        splitList(v.GetString("cors_origins")),
		LogLevel:           v.GetString("log_level"),
		DBDriver:           v.GetString("db_driver"),
		DBHost:             v.GetString("db_host"),
		DBPort:             v.GetString("db_port"),
		DBUser:             v.GetString("db_user"),
		DBPassword:         v.GetString("db_password"),
		DBName:             v.GetString("db_name"),
		DBSSLMode:          v.GetString("db_ssl_mode"),
		DBPath:             v.GetString("db_path"),
		RedisHost:          v.GetString("redis_host"),
		RedisPort:          v.GetString("redis_port"),
		RedisPassword:      v.GetString("redis_password"),
		RedisDB:            v.GetInt("redis_db"),
		RedisURL:           v.GetString("redis_url"),
		JWTSecret:          v.GetString("jwt_secret"),
		TokenTTL:           v.GetDuration("token_ttl"),
		ImageStore:         v.GetString("image_store"),
		MediaDir:           v.GetString("media_dir"),
		MediaURL:           v.GetString("media_url"),
		S3Bucket:           v.GetString("s3_bucket_name"),
		AWSRegion:          v.GetString("aws_region"),
		PageSize:           v.GetInt("page_size"),
		RecipeCreateLimit:  v.GetInt("recipe_create_limit"),
		RecipeCreateWindow: v.GetDuration("recipe_create_window"),
	}

	// CI passes everything through the environment
	if env != CI {
		applySecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applySecrets overrides sensitive values with Docker secrets when present
func applySecrets(cfg *Config) {
	for _, name := range secretKeys {
		value := readSecret(name)
		if value == "" {
			continue
		}
		switch name {
		case "db_user":
			cfg.DBUser = value
		case "db_password":
			cfg.DBPassword = value
		case "jwt_secret":
			cfg.JWTSecret = value
		case "redis_password":
			cfg.RedisPassword = value
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
