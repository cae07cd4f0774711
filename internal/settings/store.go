package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/internal/metrics"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

// ErrNotFound is returned when a configuration key has never been written.
var ErrNotFound = errors.New("setting not found")

// Setting is one row of the configuration table. Writes are
// last-write-wins; there is no versioning or conflict detection.
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by"`
}

// Store persists settings in a single key-value table. The SQL is kept to
// the portable subset so the same store runs against the local SQLite file
// in the standalone deployment and the application database in the packaged
// one.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Init(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS dashboard_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		description TEXT,
		updated_at TIMESTAMP NOT NULL,
		updated_by TEXT
	)`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize settings table: %w", err)
	}
	logger.Info("Settings table initialized")
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (Setting, error) {
	query := `SELECT key, value, description, updated_at, updated_by FROM dashboard_settings WHERE key = ?`

	var setting Setting
	var description, updatedBy sql.NullString
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&setting.Key,
		&setting.Value,
		&description,
		&setting.UpdatedAt,
		&updatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Setting{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return Setting{}, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	setting.Description = description.String
	setting.UpdatedBy = updatedBy.String

	return setting, nil
}

func (s *Store) List(ctx context.Context) ([]Setting, error) {
	query := `SELECT key, value, description, updated_at, updated_by FROM dashboard_settings ORDER BY key`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var setting Setting
		var description, updatedBy sql.NullString
		if err := rows.Scan(&setting.Key, &setting.Value, &description, &setting.UpdatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		setting.Description = description.String
		setting.UpdatedBy = updatedBy.String
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return settings, nil
}

// Upsert writes the key, replacing any prior value. Update-then-insert
// keeps the statement portable across SQLite and Snowflake; the race
// between two writers resolves as last-write-wins, which is the contract.
func (s *Store) Upsert(ctx context.Context, setting Setting) error {
	if setting.Key == "" {
		return errors.New("setting key is required")
	}
	now := time.Now().UTC()

	update := `UPDATE dashboard_settings SET value = ?, description = ?, updated_at = ?, updated_by = ? WHERE key = ?`
	res, err := s.db.ExecContext(ctx, update, setting.Value, setting.Description, now, setting.UpdatedBy, setting.Key)
	if err != nil {
		return fmt.Errorf("failed to update setting %s: %w", setting.Key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		insert := `INSERT INTO dashboard_settings (key, value, description, updated_at, updated_by) VALUES (?, ?, ?, ?, ?)`
		if _, err := s.db.ExecContext(ctx, insert, setting.Key, setting.Value, setting.Description, now, setting.UpdatedBy); err != nil {
			return fmt.Errorf("failed to insert setting %s: %w", setting.Key, err)
		}
	}

	metrics.SettingsWrites.Inc()
	logger.Debug("Setting written",
		zap.String("key", setting.Key),
		zap.String("updated_by", setting.UpdatedBy),
	)
	return nil
}
