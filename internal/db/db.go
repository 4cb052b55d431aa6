package db

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned by Load when a slice is missing or unreadable
var ErrNotFound = errors.New("slice not found")

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Open creates a database connection at path and applies pending migrations
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &DB{db}, nil
}

// Save serializes value as JSON and stores it under name
func (db *DB) Save(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = db.Exec(`
		INSERT INTO slices (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, name, string(data))
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Load decodes the slice stored under name into dst.
// Missing rows, corrupt JSON and query failures all report ErrNotFound.
func (db *DB) Load(name string, dst any) error {
	var value string
	err := db.QueryRow("SELECT value FROM slices WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		log.Printf("warning: failed to read slice %s: %v", name, err)
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		log.Printf("warning: failed to parse slice %s: %v", name, err)
		return ErrNotFound
	}
	return nil
}

// Names returns the stored slice names in alphabetical order
func (db *DB) Names() ([]string, error) {
	rows, err := db.Query("SELECT name FROM slices ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Raw returns the stored JSON for name without decoding it
func (db *DB) Raw(name string) (json.RawMessage, error) {
	var value string
	err := db.QueryRow("SELECT value FROM slices WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(value), nil
}
