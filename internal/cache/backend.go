// Package cache implements the local draft cache on SQLite, with JSONL
// export and import for moving drafts between machines. The cache is the
// fallback copy of every draft: the persistence layer writes it on every
// save attempt, so edits survive remote failures and restarts.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/harborline/draftquote/pkg/types"
)

// dbFileName is the cache database file inside DataDir.
const dbFileName = "drafts.db"

// Schema DDL. The cache persists across runs, so creation is conditional.
const (
	createEntries = `CREATE TABLE IF NOT EXISTS draft_entries (
    cache_key TEXT PRIMARY KEY,
    draft_id TEXT,
    is_local_only INTEGER NOT NULL,
    timestamp TEXT NOT NULL,
    payload TEXT NOT NULL
);`

	idxEntriesTimestamp = `CREATE INDEX IF NOT EXISTS idx_draft_entries_timestamp ON draft_entries(timestamp);`
	idxEntriesLocalOnly = `CREATE INDEX IF NOT EXISTS idx_draft_entries_local_only ON draft_entries(is_local_only);`
)

// schemaDDL lists all schema statements in execution order.
var schemaDDL = []string{
	createEntries,
	idxEntriesTimestamp,
	idxEntriesLocalOnly,
}

// Compile-time interface check.
var _ types.DraftCache = (*Backend)(nil)

// Backend implements types.DraftCache using SQLite as the store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new cache backend. The backend is not attached; call
// Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist and ensures the schema. Returns
// ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("initializing schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach releases the database connection. After Detach, all operations
// return ErrCacheDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}
