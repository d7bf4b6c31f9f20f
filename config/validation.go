package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

const insecureJWTSecret = "change-me"

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.DBDriver {
	case "postgres":
		for field, value := range map[string]string{
			"DB_HOST": cfg.DBHost,
			"DB_PORT": cfg.DBPort,
			"DB_USER": cfg.DBUser,
			"DB_NAME": cfg.DBName,
		} {
			if value == "" {
				errs = append(errs, ValidationError{field, "is required"})
			}
		}
		if cfg.DBPassword == "" && cfg.Environment != Test {
			errs = append(errs, ValidationError{"db_password", "secret is required"})
		}
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{"DB_PATH", "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"jwt_secret", "secret is required"})
	} else if cfg.Environment == Production && cfg.JWTSecret == insecureJWTSecret {
		errs = append(errs, ValidationError{"jwt_secret", "must be changed in production"})
	}

	switch cfg.ImageStore {
	case "local":
		if cfg.MediaDir == "" {
			errs = append(errs, ValidationError{"MEDIA_DIR", "is required for local image storage"})
		}
	case "s3":
		if cfg.S3Bucket == "" {
			errs = append(errs, ValidationError{"S3_BUCKET_NAME", "is required for s3 image storage"})
		}
	default:
		errs = append(errs, ValidationError{"IMAGE_STORE", fmt.Sprintf("unsupported store %q", cfg.ImageStore)})
	}

	if cfg.PageSize <= 0 {
		errs = append(errs, ValidationError{"PAGE_SIZE", "must be positive"})
	}
	if cfg.RecipeCreateLimit <= 0 || cfg.RecipeCreateWindow <= 0 {
		errs = append(errs, ValidationError{"RECIPE_CREATE_LIMIT", "limit and window must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
