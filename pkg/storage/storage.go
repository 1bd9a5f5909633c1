package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/drivers/sqlite"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
	SQLite     DatabaseType = "sqlite"
)

// DatabaseStorage is a key-value client store kept in a single table.
type DatabaseStorage struct {
	db     *squealx.DB
	dbType DatabaseType
}

// OpenSQLite opens (and creates when missing) a sqlite file store.
func OpenSQLite(dsn string) (*DatabaseStorage, error) {
	db, err := sqlite.Open(dsn, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	return NewDatabaseStorage(db)
}

// NewDatabaseStorage creates a new database storage instance
func NewDatabaseStorage(db *squealx.DB) (*DatabaseStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	storage := &DatabaseStorage{
		db:     db,
		dbType: DetectDatabaseType(db.DriverName(), ""),
	}

	if err := storage.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}

	return storage, nil
}

func (d *DatabaseStorage) createTables() error {
	var queries []string

	switch d.dbType {
	case MySQL:
		queries = d.getMySQLSchema()
	case PostgreSQL:
		queries = d.getPostgreSQLSchema()
	case SQLite:
		queries = d.getSQLiteSchema()
	default:
		return fmt.Errorf("unsupported database type: %s", d.dbType)
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}

	return nil
}

func (d *DatabaseStorage) getMySQLSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS client_storage (
			storage_key VARCHAR(255) PRIMARY KEY,
			value LONGTEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB`,
	}
}

func (d *DatabaseStorage) getPostgreSQLSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS client_storage (
			storage_key VARCHAR(255) PRIMARY KEY,
			value TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}

func (d *DatabaseStorage) getSQLiteSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS client_storage (
			storage_key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}

// Set stores value under key, replacing any previous value.
func (d *DatabaseStorage) Set(key string, value []byte) error {
	updateQuery := `
		UPDATE client_storage
		SET value = :value, updated_at = CURRENT_TIMESTAMP
		WHERE storage_key = :storage_key`

	params := map[string]any{
		"storage_key": key,
		"value":       string(value),
	}

	result, err := d.db.NamedExec(updateQuery, params)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		insertQuery := `
			INSERT INTO client_storage (storage_key, value)
			VALUES (:storage_key, :value)`
		_, err = d.db.NamedExec(insertQuery, params)
		return err
	}

	return nil
}

func (d *DatabaseStorage) Get(key string) ([]byte, bool, error) {
	query := `SELECT value FROM client_storage WHERE storage_key = :storage_key`
	params := map[string]any{
		"storage_key": key,
	}

	var value string
	err := d.db.NamedGet(&value, query, params)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (d *DatabaseStorage) Delete(key string) error {
	query := `DELETE FROM client_storage WHERE storage_key = :storage_key`
	params := map[string]any{
		"storage_key": key,
	}
	_, err := d.db.NamedExec(query, params)
	return err
}

func (d *DatabaseStorage) Close() error {
	return d.db.Close()
}

// Helper function to detect database type from connection string or driver
func DetectDatabaseType(driverName string, dataSource string) DatabaseType {
	driverName = strings.ToLower(driverName)
	dataSource = strings.ToLower(dataSource)

	switch {
	case strings.Contains(driverName, "mysql") || strings.Contains(dataSource, "mysql"):
		return MySQL
	case strings.Contains(driverName, "postgres") || strings.Contains(driverName, "pgx") ||
		strings.Contains(dataSource, "postgres") || strings.Contains(dataSource, "postgresql"):
		return PostgreSQL
	case strings.Contains(driverName, "sqlite") || strings.Contains(dataSource, ".db") ||
		strings.Contains(dataSource, "sqlite"):
		return SQLite
	default:
		return SQLite
	}
}
