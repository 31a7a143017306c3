package database

import (
	"database/sql"
	stdlog "log"
	"sync/atomic"
	"time"

	"github.com/username/wealthfolio/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// Open opens the database at the given path and ensures the schema exists.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, err
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitDB opens the process-wide database handle and returns its health
// tracker. The handle is long-lived and shared by all concurrent operations.
func InitDB(databasePath string) *Health {
	db, err := Open(databasePath)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to open database", "databasePath", databasePath, "error", err)
		}
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}
	DB = db

	health := &Health{}
	if err := db.Ping(); err != nil {
		logger.L.Warn("Durable store unreachable at startup, operations will be served from the in-process store", "error", err)
	} else {
		health.set(true)
	}
	return health
}

func createTables(db *sql.DB) error {
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS portfolios (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		assets TEXT NOT NULL DEFAULT '[]',
		total_value REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT,
		description TEXT,
		date TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_amount REAL NOT NULL DEFAULT 0,
		current_amount REAL NOT NULL DEFAULT 0,
		target_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);
	`
	_, err := db.Exec(createTableStatement)
	return err
}

// Health tracks whether the durable store is currently reachable. The
// repository facade reads the flag once at the start of every operation; a
// failure after that point belongs to the in-flight operation and never flips
// the dispatch decision mid-call.
type Health struct {
	reachable atomic.Bool
}

func (h *Health) Reachable() bool { return h.reachable.Load() }

func (h *Health) set(up bool) {
	was := h.reachable.Swap(up)
	if was == up || logger.L == nil {
		return
	}
	if up {
		logger.L.Info("Durable store reachable, resuming durable dispatch")
	} else {
		logger.L.Warn("Durable store unreachable, falling back to in-process store")
	}
}

// StartMonitor pings the database on a fixed interval and records the result.
// Connection-level timeouts belong to the driver; the monitor only translates
// ping outcomes into the reachability flag.
func (h *Health) StartMonitor(db *sql.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			h.set(db.Ping() == nil)
		}
	}()
}
