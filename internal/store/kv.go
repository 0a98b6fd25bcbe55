package store

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// KV is the shared key-value namespace every station reads and writes.
// It stands in for the browser-local storage area of the legacy system:
// a handful of opaque text values under well-known keys.
type KV struct {
	db *sqlx.DB
}

func OpenKV(dsn string) (*KV, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps :memory: databases coherent and avoids
	// SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &KV{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS kv(
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

// Get returns the stored value and whether the key exists.
func (k *KV) Get(key string) (string, bool, error) {
	var v string
	err := k.db.Get(&v, `SELECT value FROM kv WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (k *KV) Set(key, value string) error {
	_, err := k.db.Exec(`
		INSERT INTO kv(key, value, updated_at) VALUES(?,?,?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().Format(time.RFC3339))
	return err
}

func (k *KV) Delete(key string) error {
	_, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (k *KV) Close() error { return k.db.Close() }
