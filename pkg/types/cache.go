package types

import "time"

// CacheEntry is one record in the local draft cache. The cache is the
// authoritative fallback when the remote store is unreachable: every save
// attempt writes the entry regardless of the remote outcome.
type CacheEntry struct {
	// Key is the cache key, normally the draft's Identity().
	Key string `json:"key"`
	// DraftID is the server-assigned id, nil while the draft is local-only.
	DraftID *string `json:"draftId"`
	// Timestamp is the time of the last write for this entry.
	Timestamp time.Time `json:"timestamp"`
	// Payload is the full draft as last seen by the engine.
	Payload *DraftQuote `json:"payload"`
	// IsLocalOnly marks drafts that have never been synced remotely.
	IsLocalOnly bool `json:"isLocalOnly"`
}

// DraftCache is the key/value contract for the local cache medium. Callers
// attach to a backend, operate on entries, and detach when done.
type DraftCache interface {
	// Attach connects the cache to its storage medium, creating the data
	// directory if needed. Returns ErrAlreadyAttached on a second call.
	Attach(config Config) error

	// Detach releases storage resources. Idempotent. After Detach,
	// operations return ErrCacheDetached.
	Detach() error

	// Put creates or replaces the entry under entry.Key.
	Put(entry CacheEntry) error

	// Get retrieves the entry with the given key.
	// Returns ErrNotFound if no entry exists.
	Get(key string) (*CacheEntry, error)

	// Delete removes the entry with the given key.
	// Returns ErrNotFound if no entry exists.
	Delete(key string) error

	// List enumerates all entries, most recent first.
	List() ([]CacheEntry, error)

	// Cleanup removes local-only entries beyond the retain most recent,
	// returning the number of entries removed. Synced entries are kept.
	Cleanup(retain int) (int, error)
}
