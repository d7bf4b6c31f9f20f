// Command migrate applies the SQL migrations in sql/ to a PostgreSQL
// database, recording each applied version in schema_migrations.
package main

import (
	"database/sql"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram/backend/config"
)

//go:embed sql/*.sql
var migrations embed.FS

const migrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    VARCHAR(32) PRIMARY KEY,
    name       TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("DATABASE_URL is not set and config could not be loaded")
		}
		dsn = cfg.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if _, err := db.Exec(migrationsTable); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema_migrations")
	}

	if *rollback {
		if err := rollbackLast(db); err != nil {
			log.Fatal().Err(err).Msg("rollback failed")
		}
		return
	}
	if err := applyAll(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("All migrations applied successfully")
}

// migrationFiles lists forward migrations in version order
func migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrations, "sql")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if path.Ext(name) == ".sql" && !strings.HasSuffix(name, "_rollback.sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	return files, nil
}

func applyAll(db *sql.DB) error {
	files, err := migrationFiles()
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, file := range files {
		version := strings.SplitN(file, "_", 2)[0]

		var applied bool
		err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if applied {
			log.Info().Str("file", file).Msg("Migration already applied")
			continue
		}

		content, err := migrations.ReadFile(path.Join("sql", file))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		err = inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(content)); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", file, err)
			}
			_, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version, file)
			return err
		})
		if err != nil {
			return err
		}
		log.Info().Str("file", file).Msg("Applied migration")
	}
	return nil
}

func rollbackLast(db *sql.DB) error {
	var version, name string
	err := db.QueryRow("SELECT version, name FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1").
		Scan(&version, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("no migrations to rollback")
	}
	if err != nil {
		return fmt.Errorf("failed to get last migration: %w", err)
	}

	rollbackFile := strings.TrimSuffix(name, ".sql") + "_rollback.sql"
	content, err := migrations.ReadFile(path.Join("sql", rollbackFile))
	if err != nil {
		return fmt.Errorf("rollback file not found: %s", rollbackFile)
	}

	err = inTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		_, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", version)
		return err
	})
	if err != nil {
		return err
	}
	log.Info().Str("file", name).Msg("Rolled back migration")
	return nil
}

func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
