package cache

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harborline/draftquote/pkg/types"
)

// ExportJSONL writes all cache entries to a JSONL file, one entry per line,
// most recent first. The write is atomic: temp file, fsync, rename.
func (b *Backend) ExportJSONL(path string) (int, error) {
	entries, err := b.List()
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		rec, err := json.Marshal(entry)
		if err != nil {
			return 0, fmt.Errorf("serializing entry %s: %w", entry.Key, err)
		}
		records = append(records, rec)
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ImportJSONL loads entries from a JSONL file into the cache, replacing
// entries with matching keys. Malformed lines are skipped. Returns the
// number of entries imported.
func (b *Backend) ImportJSONL(path string) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, rec := range records {
		var entry types.CacheEntry
		if err := json.Unmarshal(rec, &entry); err != nil {
			continue
		}
		if entry.Key == "" {
			continue
		}
		if err := b.Put(entry); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
