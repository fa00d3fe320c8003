package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &HistoryStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	return contract.GetHistoryDBFilePath()
}

// InitHistory initializes the global manager. An empty or none backend leaves
// history disabled and GetHistoryStore returning nil.
func InitHistory(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" || backend == schema.NoneBackend {
			return
		}
		store, err := NewHistoryStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize run history: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.history = store
	})

	return initErr
}

// CloseHistory should be called on application shutdown.
func CloseHistory() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// DropHistory removes the history storage for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the history tables.
// For NoneBackend, it does nothing.
func DropHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, _, err := openDatabase(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		for _, table := range []string{serviceCoverageTable, reportRunsTable} {
			if err := dropSQLTable(db, table, backend); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// dropSQLTable drops the table if it exists.
func dropSQLTable(db *sql.DB, tableName string, backend schema.DatabaseBackend) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", backend, err)
	}
	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
