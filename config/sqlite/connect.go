package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"docgen-srv/config"

	_ "modernc.org/sqlite" // SQLite driver
)

var (
	instance *sql.DB
	once     sync.Once
	mu       sync.RWMutex
	initErr  error
)

// Connect opens the legacy SQLite database using singleton pattern.
// The file must already exist; this connector never creates one.
func Connect(ctx context.Context, cfg config.SQLiteConfig) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	if initErr != nil {
		once = sync.Once{}
		initErr = nil
	}

	var err error
	once.Do(func() {
		if _, statErr := os.Stat(cfg.Path); statErr != nil {
			err = fmt.Errorf("sqlite database not found at %s: %w", cfg.Path, statErr)
			initErr = err
			return
		}

		db, dbErr := sql.Open("sqlite", cfg.Path)
		if dbErr != nil {
			err = fmt.Errorf("failed to open SQLite database: %w", dbErr)
			initErr = err
			return
		}

		// The migration tool reads sequentially; a single connection avoids
		// SQLITE_BUSY contention.
		db.SetMaxOpenConns(1)

		if pingErr := db.PingContext(ctx); pingErr != nil {
			_ = db.Close()
			err = fmt.Errorf("failed to ping SQLite: %w", pingErr)
			initErr = err
			return
		}

		instance = db
	})

	return instance, err
}

// Disconnect closes the SQLite database and resets the singleton.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		if err := instance.Close(); err != nil {
			return fmt.Errorf("failed to close SQLite database: %w", err)
		}
		instance = nil
		initErr = nil
		once = sync.Once{}
	}
	return nil
}
