package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harborline/draftquote/pkg/types"
)

// Put creates or replaces the entry under entry.Key.
func (b *Backend) Put(entry types.CacheEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrCacheDetached
	}
	if entry.Key == "" {
		return fmt.Errorf("cache key: %w", types.ErrInvalidID)
	}

	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("serializing payload: %w", err)
	}

	var draftID sql.NullString
	if entry.DraftID != nil {
		draftID = sql.NullString{String: *entry.DraftID, Valid: true}
	}
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err = b.db.Exec(`INSERT INTO draft_entries (cache_key, draft_id, is_local_only, timestamp, payload)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(cache_key) DO UPDATE SET
    draft_id = excluded.draft_id,
    is_local_only = excluded.is_local_only,
    timestamp = excluded.timestamp,
    payload = excluded.payload`,
		entry.Key, draftID, boolToInt(entry.IsLocalOnly), ts.Format(time.RFC3339Nano), string(payload))
	if err != nil {
		return fmt.Errorf("writing entry %s: %w", entry.Key, err)
	}
	return nil
}

// Get retrieves the entry with the given key. Returns ErrNotFound if no
// entry exists.
func (b *Backend) Get(key string) (*types.CacheEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCacheDetached
	}

	row := b.db.QueryRow(`SELECT cache_key, draft_id, is_local_only, timestamp, payload
FROM draft_entries WHERE cache_key = ?`, key)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", key, err)
	}
	return entry, nil
}

// Delete removes the entry with the given key. Returns ErrNotFound if no
// entry exists.
func (b *Backend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrCacheDetached
	}

	res, err := b.db.Exec(`DELETE FROM draft_entries WHERE cache_key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting entry %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// List enumerates all entries, most recent first.
func (b *Backend) List() ([]types.CacheEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCacheDetached
	}

	rows, err := b.db.Query(`SELECT cache_key, draft_id, is_local_only, timestamp, payload
FROM draft_entries ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []types.CacheEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Cleanup removes local-only entries beyond the retain most recent,
// returning the number of entries removed. Synced entries are never touched;
// they mirror the remote store and cost nothing to keep.
func (b *Backend) Cleanup(retain int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrCacheDetached
	}
	if retain < 0 {
		retain = 0
	}

	res, err := b.db.Exec(`DELETE FROM draft_entries
WHERE is_local_only = 1 AND cache_key NOT IN (
    SELECT cache_key FROM draft_entries
    WHERE is_local_only = 1
    ORDER BY timestamp DESC
    LIMIT ?
)`, retain)
	if err != nil {
		return 0, fmt.Errorf("cleaning up entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*types.CacheEntry, error) {
	var (
		entry     types.CacheEntry
		draftID   sql.NullString
		localOnly int
		ts        string
		payload   string
	)
	if err := row.Scan(&entry.Key, &draftID, &localOnly, &ts, &payload); err != nil {
		return nil, err
	}
	if draftID.Valid {
		id := draftID.String
		entry.DraftID = &id
	}
	entry.IsLocalOnly = localOnly != 0

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", ts, err)
	}
	entry.Timestamp = parsed

	var draft types.DraftQuote
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", types.ErrInvalidData)
	}
	entry.Payload = &draft
	return &entry, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
