package database

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// MaintenanceLastRunKey holds the calendar day (UTC, YYYY-MM-DD) of the last
// fully successful maintenance run.
const MaintenanceLastRunKey = "maintenance.last_run"

// SettingsStore reads and writes the key/value settings table over plain SQL.
type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// GetSetting retrieves a single setting value. Returns sql.ErrNoRows when
// the key is absent.
func (s *SettingsStore) GetSetting(key string) (string, error) {
	queryBuilder := psql.Select("value").
		From("settings").
		Where(sq.Eq{"key": key}).
		Limit(1)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build SQL query for GetSetting: %w", err)
	}

	var value string
	err = s.db.QueryRow(sqlStr, args...).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", sql.ErrNoRows
		}
		return "", fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting inserts or updates a setting value.
func (s *SettingsStore) SetSetting(key, value string) error {
	queryBuilder := psql.Insert("settings").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().Unix()).
		Suffix("ON CONFLICT(key) DO UPDATE SET").
		Suffix("value = excluded.value,").
		Suffix("updated_at = excluded.updated_at")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL query for SetSetting: %w", err)
	}

	_, err = s.db.Exec(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to execute set setting %s: %w", key, err)
	}
	return nil
}

// LastMaintenanceRun returns the stored last-run date, or "" when the job
// has never completed.
func (s *SettingsStore) LastMaintenanceRun() (string, error) {
	value, err := s.GetSetting(MaintenanceLastRunKey)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetLastMaintenanceRun advances the last-run marker.
func (s *SettingsStore) SetLastMaintenanceRun(date string) error {
	return s.SetSetting(MaintenanceLastRunKey, date)
}
