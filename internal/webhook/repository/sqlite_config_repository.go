// Package repository persists the webhook configuration in a local SQLite settings table.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/webhook/domain"
	"github.com/allisson/vmadmin/internal/webhook/service"
)

// ConfigKey is the settings key holding the webhook configuration.
const ConfigKey = "webhook_config"

// Credential value prefixes. sealedPrefix marks values encrypted by the Sealer.
// plainPrefix escapes unsealed values that would otherwise read as tagged.
const (
	sealedPrefix = "sealed:"
	plainPrefix  = "plain:"
)

// SQLiteConfigRepository stores the configuration as one JSON document under ConfigKey.
// When a Sealer is set, credential values inside the document are encrypted.
type SQLiteConfigRepository struct {
	db     *sql.DB
	sealer service.Sealer
}

// Bootstrap creates the settings table if missing.
func (s *SQLiteConfigRepository) Bootstrap(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS settings (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return apperrors.Persistence(err, "failed to create settings table")
	}
	return nil
}

// Save replaces the stored configuration.
func (s *SQLiteConfigRepository) Save(ctx context.Context, cfg *domain.Config) error {
	stored := *cfg
	stored.Auth = cloneAuth(cfg.Auth)
	if err := s.transformSecrets(&stored.Auth, s.seal); err != nil {
		return err
	}

	value, err := json.Marshal(stored)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal webhook config")
	}

	query := `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query, ConfigKey, string(value), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return apperrors.Persistence(err, "failed to save webhook config")
	}
	return nil
}

// Load returns the stored configuration, or (nil, false, nil) if none was saved.
func (s *SQLiteConfigRepository) Load(ctx context.Context) (*domain.Config, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, ConfigKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, apperrors.Persistence(err, "failed to load webhook config")
	}

	var cfg domain.Config
	if err := json.Unmarshal([]byte(value), &cfg); err != nil {
		return nil, false, apperrors.Wrap(err, "failed to unmarshal webhook config")
	}
	if err := s.transformSecrets(&cfg.Auth, s.open); err != nil {
		return nil, false, err
	}
	if cfg.CustomHeaders == nil {
		cfg.CustomHeaders = []domain.CustomHeader{}
	}

	return &cfg, true, nil
}

func (s *SQLiteConfigRepository) transformSecrets(auth *domain.Auth, fn func(string, string) (string, error)) error {
	var err error
	if auth.Bearer != nil {
		if auth.Bearer.Token, err = fn(auth.Bearer.Token, "bearer.token"); err != nil {
			return err
		}
	}
	if auth.APIKey != nil {
		if auth.APIKey.Value, err = fn(auth.APIKey.Value, "apikey.value"); err != nil {
			return err
		}
	}
	if auth.Basic != nil {
		if auth.Basic.Password, err = fn(auth.Basic.Password, "basic.password"); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteConfigRepository) seal(value, field string) (string, error) {
	if value == "" {
		return value, nil
	}
	if s.sealer == nil {
		if strings.HasPrefix(value, sealedPrefix) || strings.HasPrefix(value, plainPrefix) {
			return plainPrefix + value, nil
		}
		return value, nil
	}
	sealed, err := s.sealer.Seal([]byte(value), []byte(field))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to seal webhook credential")
	}
	return sealedPrefix + sealed, nil
}

func (s *SQLiteConfigRepository) open(value, field string) (string, error) {
	if plain, ok := strings.CutPrefix(value, plainPrefix); ok {
		return plain, nil
	}
	encoded, ok := strings.CutPrefix(value, sealedPrefix)
	if !ok {
		return value, nil
	}
	if s.sealer == nil {
		return "", apperrors.New("webhook credential is sealed but no settings encryption key is configured")
	}
	plaintext, err := s.sealer.Open(encoded, []byte(field))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to open webhook credential")
	}
	return string(plaintext), nil
}

func cloneAuth(auth domain.Auth) domain.Auth {
	cloned := domain.Auth{Type: auth.Type}
	if auth.Bearer != nil {
		bearer := *auth.Bearer
		cloned.Bearer = &bearer
	}
	if auth.APIKey != nil {
		apiKey := *auth.APIKey
		cloned.APIKey = &apiKey
	}
	if auth.Basic != nil {
		basic := *auth.Basic
		cloned.Basic = &basic
	}
	return cloned
}

// NewSQLiteConfigRepository creates a repository on an open SQLite database.
// sealer may be nil to store credentials in clear text.
func NewSQLiteConfigRepository(db *sql.DB, sealer service.Sealer) *SQLiteConfigRepository {
	return &SQLiteConfigRepository{db: db, sealer: sealer}
}
