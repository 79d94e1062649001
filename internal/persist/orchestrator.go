package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/harborline/draftquote/internal/remote"
	"github.com/harborline/draftquote/internal/wire"
	"github.com/harborline/draftquote/pkg/types"
)

// State is the orchestrator's save state.
type State string

// Save states. Mutations move the orchestrator to dirty, a save attempt to
// saving, and completion to saved or error.
const (
	StateIdle   State = "idle"
	StateDirty  State = "dirty"
	StateSaving State = "saving"
	StateSaved  State = "saved"
	StateError  State = "error"
)

// DraftSource provides the current draft at save time. The engine's session
// implements it; reads happen under the orchestrator's serialization.
type DraftSource interface {
	Draft() *types.DraftQuote
}

// Orchestrator schedules debounced autosaves, runs manual saves, adopts the
// server identity after the first successful create, and keeps the local
// cache current on every attempt. The in-flight guard is the only mutual
// exclusion between saves: a second save while one is in flight is rejected
// (manual) or dropped (autosave).
//
// All draft mutations and the timer callback are serialized through one
// locker, normally the engine's mutex. MarkDirty and State expect the
// caller to hold that locker; Save and the timer callback acquire it
// themselves.
type Orchestrator struct {
	cfg    types.Config
	locker sync.Locker
	source DraftSource
	remote remote.Store     // nil runs local-only
	cache  types.DraftCache // nil skips caching
	sched  Scheduler

	state     State
	inFlight  bool
	redirty   bool
	lastSaved []byte
}

// NewOrchestrator wires an orchestrator. A nil scheduler gets a
// timer-backed one; a nil locker gets a private mutex.
func NewOrchestrator(cfg types.Config, locker sync.Locker, source DraftSource, store remote.Store, cache types.DraftCache, sched Scheduler) *Orchestrator {
	if sched == nil {
		sched = NewTimerScheduler()
	}
	if locker == nil {
		locker = &sync.Mutex{}
	}
	return &Orchestrator{
		cfg:    cfg,
		locker: locker,
		source: source,
		remote: store,
		cache:  cache,
		sched:  sched,
		state:  StateIdle,
	}
}

// State returns the current save state. The caller must hold the locker.
func (o *Orchestrator) State() State {
	return o.state
}

// MarkDirty records a draft mutation and (re)arms the debounce timer. A
// mutation during an in-flight save is remembered and becomes a fresh dirty
// cycle when the save completes. The caller must hold the locker.
func (o *Orchestrator) MarkDirty() {
	if o.inFlight {
		o.redirty = true
		return
	}
	o.state = StateDirty
	o.sched.Arm(o.cfg.DebounceDelay, o.autosave)
}

// Save runs a manual save immediately, bypassing the debounce timer. It
// returns ErrSaveInFlight when a save is already running: the manual save
// wins over autosave scheduling, never the other way around.
func (o *Orchestrator) Save(ctx context.Context) error {
	o.locker.Lock()
	defer o.locker.Unlock()
	return o.save(ctx, true)
}

// Close cancels any pending autosave.
func (o *Orchestrator) Close() {
	o.sched.Cancel()
}

// Reset clears the save state after the source switched to a different
// draft, so suppression never compares against the previous draft's bytes.
// The caller must hold the locker and ensure no save is in flight.
func (o *Orchestrator) Reset() {
	o.sched.Cancel()
	o.state = StateIdle
	o.redirty = false
	o.lastSaved = nil
}

// autosave is the debounce timer's callback, re-entering the serialized
// mutation path. Failures are deliberately silent: the next dirty cycle or
// manual save is the retry path.
func (o *Orchestrator) autosave() {
	o.locker.Lock()
	defer o.locker.Unlock()
	_ = o.save(context.Background(), false)
}

func (o *Orchestrator) save(ctx context.Context, manual bool) error {
	if o.inFlight {
		if manual {
			return fmt.Errorf("manual save: %w", types.ErrSaveInFlight)
		}
		// Autosave fired while a save is running; the mutation that armed
		// it is remembered for the next cycle.
		o.redirty = true
		return nil
	}
	o.sched.Cancel()

	d := o.source.Draft()

	// Validation failures block the remote write entirely, but the draft
	// still reaches the cache so the edits survive.
	if err := wire.Validate(d); err != nil {
		o.writeCache(d)
		o.state = StateDirty
		return err
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("serializing draft: %w", err)
	}

	// No-op suppression: an unchanged draft does not hit the remote again.
	if o.lastSaved != nil && bytes.Equal(payload, o.lastSaved) {
		o.writeCache(d)
		o.state = StateSaved
		return nil
	}

	o.writeCache(d)

	if o.remote == nil {
		o.lastSaved = payload
		o.state = StateSaved
		return nil
	}

	// Build the wire request under the lock, then release it for the
	// network call so edits keep flowing while the write is in flight.
	isCreate := !d.HasServerIdentity()
	var createReq *wire.WireCreate
	var updateReq *wire.WireUpdate
	if isCreate {
		createReq, err = wire.ToCreateRequest(d)
	} else {
		updateReq, err = wire.ToUpdateRequest(d)
	}
	if err != nil {
		o.state = StateDirty
		return err
	}

	o.state = StateSaving
	o.inFlight = true
	draftID := d.DraftID

	o.locker.Unlock()
	var resp *wire.WireResponse
	var remoteErr error
	if isCreate {
		resp, remoteErr = o.remote.CreateDraft(ctx, createReq)
	} else {
		_, remoteErr = o.remote.UpdateDraft(ctx, draftID, updateReq)
	}
	o.locker.Lock()
	o.inFlight = false

	if remoteErr != nil {
		o.state = StateError
		o.rearmIfRedirty()
		if isCreate {
			return fmt.Errorf("creating draft: %w", remoteErr)
		}
		return fmt.Errorf("updating draft %s: %w", draftID, remoteErr)
	}

	if isCreate {
		if resp == nil || resp.DraftQuoteID == "" {
			o.state = StateError
			return fmt.Errorf("create response draftQuoteId: %w", types.ErrMapping)
		}
		// Adopt the server identity; subsequent writes become updates.
		oldKey := d.Identity()
		d.DraftID = resp.DraftQuoteID
		o.dropCacheEntry(oldKey)
	}

	// Reserialize only when no mutation landed during the write, so the
	// no-op check compares against what the remote actually holds.
	if !o.redirty {
		if saved, merr := json.Marshal(d); merr == nil {
			o.lastSaved = saved
		}
	}
	o.writeCache(d)
	o.state = StateSaved
	o.rearmIfRedirty()
	return nil
}

// rearmIfRedirty turns a mutation observed during the save into a fresh
// dirty cycle.
func (o *Orchestrator) rearmIfRedirty() {
	if !o.redirty {
		return
	}
	o.redirty = false
	o.state = StateDirty
	o.sched.Arm(o.cfg.DebounceDelay, o.autosave)
}

// writeCache stores the draft's latest contents under its current identity.
// Cache failures never fail a save; the cache is best-effort local fallback.
func (o *Orchestrator) writeCache(d *types.DraftQuote) {
	if o.cache == nil || d == nil || d.Identity() == "" {
		return
	}
	entry := types.CacheEntry{
		Key:         d.Identity(),
		Timestamp:   time.Now().UTC(),
		Payload:     d,
		IsLocalOnly: !d.HasServerIdentity(),
	}
	if d.HasServerIdentity() {
		id := d.DraftID
		entry.DraftID = &id
	}
	_ = o.cache.Put(entry)
}

// dropCacheEntry removes a stale cache entry after the draft's identity
// changed from local to server-assigned.
func (o *Orchestrator) dropCacheEntry(key string) {
	if o.cache == nil || key == "" {
		return
	}
	_ = o.cache.Delete(key)
}
