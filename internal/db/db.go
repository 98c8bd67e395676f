package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DefaultPath returns the database location: $PINELY_DB when set,
// otherwise ~/.pinely/pinely.db.
func DefaultPath() (string, error) {
	if p := os.Getenv("PINELY_DB"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".pinely", "pinely.db"), nil
}

// connPragmas run on every new pooled connection. busy_timeout is
// per-connection state, so a one-off Exec would only reach one of them.
const connPragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// dsn appends the per-connection pragmas to path.
func dsn(path string) string {
	return path + "?" + connPragmas
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Every connection gets WAL mode and a busy timeout; migrations run automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if path == MemoryPath {
		// Each pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// sql.Open is lazy; surface a bad path or pragma here.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
