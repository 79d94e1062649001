// Shared helpers for draftquote CLI commands.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harborline/draftquote/internal/cache"
	"github.com/harborline/draftquote/internal/remote"
	"github.com/harborline/draftquote/pkg/engine"
	"github.com/harborline/draftquote/pkg/types"
)

// attachCache resolves the data directory, creates a cache backend, and
// attaches it. The caller must defer backend.Detach().
func attachCache() (*cache.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := engineCfg
	cfg.DataDir = dataDir

	backend := cache.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach cache: %w", err)
	}
	return backend, nil
}

// newStore returns the remote store when a base URL is configured, nil for
// local-only operation.
func newStore() remote.Store {
	if engineCfg.RemoteBaseURL == "" {
		return nil
	}
	return remote.NewHTTPStore(engineCfg.RemoteBaseURL, engineCfg.RequestTimeout)
}

// newSession starts an engine session over a fresh draft, backed by the
// attached cache and the configured remote store.
func newSession(backend *cache.Backend) *engine.Session {
	return engine.NewSession(engineCfg, newStore(), backend)
}

// openDraft attaches the cache and loads the draft stored under key into a
// session. The caller must defer both backend.Detach() and session.Close().
func openDraft(key string) (*engine.Session, *cache.Backend, error) {
	backend, err := attachCache()
	if err != nil {
		return nil, nil, err
	}

	session := newSession(backend)
	if err := session.Load(context.Background(), key); err != nil {
		session.Close()
		backend.Detach()
		return nil, nil, err
	}
	return session, backend, nil
}

// saveDraft saves the session's draft and reports the outcome. Incomplete
// drafts and remote failures are kept in the local cache and reported as
// warnings; the command still succeeds.
func saveDraft(session *engine.Session) {
	err := session.Save(context.Background())
	if err == nil {
		return
	}

	var verr *types.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "draft kept locally, incomplete fields: %s\n", strings.Join(verr.Fields, ", "))
		return
	}
	if errors.Is(err, types.ErrRemote) {
		fmt.Fprintln(os.Stderr, "remote save failed, draft kept locally:", err)
		return
	}
	fmt.Fprintln(os.Stderr, "save draft:", err)
	os.Exit(exitSysError)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal JSON:", err)
		os.Exit(exitSysError)
	}
	fmt.Println(string(out))
}

// isNotFound returns true if the error wraps ErrNotFound.
func isNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}

// isLimitExceeded returns true if the error wraps ErrLimitExceeded.
func isLimitExceeded(err error) bool {
	return errors.Is(err, types.ErrLimitExceeded)
}
