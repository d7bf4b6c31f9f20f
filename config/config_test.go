package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, secrets map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
	}
	t.Setenv("SECRETS_DIR", dir)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "foodgram_test")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("TOKEN_TTL", "2h")
	writeSecrets(t, map[string]string{
		"db_password": "postpass",
		"jwt_secret":  "test-secret",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "foodgram_test", cfg.DBName)
	assert.Equal(t, "postpass", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://frontend:3000"}, cfg.CORSOrigins)
}

func TestLoadConfigSecretsOverrideEnvironment(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "from-env")
	writeSecrets(t, map[string]string{"jwt_secret": "from-secret"})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
	assert.Equal(t, "from-env", cfg.DBPassword)
}

func TestLoadConfigMissingSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CI", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")
	writeSecrets(t, map[string]string{})

	_, err := LoadConfig()
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "jwt_secret")
	assert.Contains(t, fields, "db_password")
}

func TestValidateConfigSqlite(t *testing.T) {
	cfg := &Config{
		Environment:        Test,
		ServerPort:         "8080",
		DBDriver:           "sqlite",
		DBPath:             ":memory:",
		JWTSecret:          "secret",
		ImageStore:         "local",
		MediaDir:           "media",
		PageSize:           6,
		RecipeCreateLimit:  1,
		RecipeCreateWindow: time.Minute,
	}
	assert.NoError(t, ValidateConfig(cfg))

	cfg.ImageStore = "s3"
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET_NAME")
}
