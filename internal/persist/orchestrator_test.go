package persist

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/draftquote/internal/wire"
	"github.com/harborline/draftquote/pkg/types"
)

// manualScheduler lets tests fire the debounce callback deterministically.
type manualScheduler struct {
	armed   bool
	delay   time.Duration
	fire    func()
	armings int
}

func (s *manualScheduler) Arm(delay time.Duration, fire func()) {
	s.armed = true
	s.delay = delay
	s.fire = fire
	s.armings++
}

func (s *manualScheduler) Cancel() {
	s.armed = false
	s.fire = nil
}

func (s *manualScheduler) Fire(t *testing.T) {
	t.Helper()
	require.True(t, s.armed, "scheduler is not armed")
	fire := s.fire
	s.armed = false
	s.fire = nil
	fire()
}

// fakeStore records remote calls and can be told to fail or block.
type fakeStore struct {
	creates  int
	updates  int
	nextID   string
	failWith error
	block    chan struct{} // when non-nil, calls wait until closed
	lastID   string
}

func (f *fakeStore) CreateDraft(ctx context.Context, req *wire.WireCreate) (*wire.WireResponse, error) {
	if f.block != nil {
		<-f.block
	}
	f.creates++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &wire.WireResponse{DraftQuoteID: f.nextID}, nil
}

func (f *fakeStore) UpdateDraft(ctx context.Context, draftID string, req *wire.WireUpdate) (*wire.WireResponse, error) {
	if f.block != nil {
		<-f.block
	}
	f.updates++
	f.lastID = draftID
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &wire.WireResponse{DraftQuoteID: draftID}, nil
}

func (f *fakeStore) GetDraft(ctx context.Context, draftID string) (*wire.WireResponse, error) {
	return &wire.WireResponse{DraftQuoteID: draftID}, nil
}

// memCache is an in-memory DraftCache for orchestrator tests.
type memCache struct {
	entries map[string]types.CacheEntry
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]types.CacheEntry)}
}

func (c *memCache) Attach(config types.Config) error { return nil }
func (c *memCache) Detach() error                    { return nil }

func (c *memCache) Put(entry types.CacheEntry) error {
	c.entries[entry.Key] = entry
	c.puts++
	return nil
}

func (c *memCache) Get(key string) (*types.CacheEntry, error) {
	e, ok := c.entries[key]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &e, nil
}

func (c *memCache) Delete(key string) error {
	if _, ok := c.entries[key]; !ok {
		return types.ErrNotFound
	}
	delete(c.entries, key)
	return nil
}

func (c *memCache) List() ([]types.CacheEntry, error) {
	out := make([]types.CacheEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out, nil
}

func (c *memCache) Cleanup(retain int) (int, error) { return 0, nil }

// draftSource holds the draft under test.
type draftSource struct {
	d *types.DraftQuote
}

func (s *draftSource) Draft() *types.DraftQuote { return s.d }

func savableDraft() *types.DraftQuote {
	return &types.DraftQuote{
		LocalID:        "local-1",
		RequestQuoteID: "req-1",
		Step1: &types.Step1{
			Customer:    types.Customer{CompanyName: "Acme Forwarding"},
			Origin:      types.Location{City: "Le Havre"},
			Destination: types.Location{City: "Singapore"},
		},
	}
}

func setup(t *testing.T, store *fakeStore) (*Orchestrator, *manualScheduler, *memCache, *draftSource) {
	t.Helper()
	sched := &manualScheduler{}
	cache := newMemCache()
	source := &draftSource{d: savableDraft()}
	cfg := types.DefaultConfig()
	o := NewOrchestrator(cfg, nil, source, store, cache, sched)
	t.Cleanup(o.Close)
	return o, sched, cache, source
}

func TestDebounceCoalescing(t *testing.T) {
	store := &fakeStore{nextID: "srv-1"}
	o, sched, _, _ := setup(t, store)

	// A burst of edits re-arms the timer each time; only the last one fires.
	for i := 0; i < 5; i++ {
		o.MarkDirty()
	}
	assert.Equal(t, StateDirty, o.State())
	assert.Equal(t, 5, sched.armings)
	assert.Equal(t, 0, store.creates)

	sched.Fire(t)
	assert.Equal(t, 1, store.creates, "one burst must produce exactly one remote write")
	assert.Equal(t, StateSaved, o.State())
}

func TestManualSaveBypassesTimer(t *testing.T) {
	store := &fakeStore{nextID: "srv-1"}
	o, sched, _, _ := setup(t, store)

	o.MarkDirty()
	require.NoError(t, o.Save(context.Background()))

	assert.Equal(t, 1, store.creates)
	assert.False(t, sched.armed, "pending autosave must be cancelled by a manual save")
	assert.Equal(t, StateSaved, o.State())
}

func TestDuplicateSaveSuppression(t *testing.T) {
	store := &fakeStore{nextID: "srv-1"}
	o, _, _, _ := setup(t, store)

	require.NoError(t, o.Save(context.Background()))
	require.NoError(t, o.Save(context.Background()))

	assert.Equal(t, 1, store.creates, "unchanged draft must not be written twice")
	assert.Equal(t, 0, store.updates)
	assert.Equal(t, StateSaved, o.State())
}

func TestIdentityAdoption(t *testing.T) {
	store := &fakeStore{nextID: "srv-42"}
	o, _, cache, source := setup(t, store)

	require.NoError(t, o.Save(context.Background()))
	assert.Equal(t, "srv-42", source.d.DraftID)

	// The stale local-only entry is dropped; the draft lives under its
	// server identity now.
	_, err := cache.Get("local-1")
	assert.ErrorIs(t, err, types.ErrNotFound)
	entry, err := cache.Get("srv-42")
	require.NoError(t, err)
	assert.False(t, entry.IsLocalOnly)

	// Subsequent writes are updates, not creates.
	source.d.Step1.Comment = "changed"
	o.MarkDirty()
	require.NoError(t, o.Save(context.Background()))
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, "srv-42", store.lastID)
}

func TestValidationBlocksRemoteWrite(t *testing.T) {
	store := &fakeStore{nextID: "srv-1"}
	o, _, cache, source := setup(t, store)
	source.d = &types.DraftQuote{LocalID: "local-2"}

	err := o.Save(context.Background())
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)
	assert.Equal(t, 0, store.creates, "invalid draft must never reach the remote")
	assert.Equal(t, StateDirty, o.State())

	// The edits still reached the cache.
	_, cerr := cache.Get("local-2")
	assert.NoError(t, cerr)
}

func TestRemoteFailure(t *testing.T) {
	store := &fakeStore{failWith: fmt.Errorf("%w: boom", types.ErrRemote)}
	o, _, cache, _ := setup(t, store)

	err := o.Save(context.Background())
	assert.ErrorIs(t, err, types.ErrRemote)
	assert.Equal(t, StateError, o.State())

	// No edit is lost: the cache holds the latest contents.
	entry, cerr := cache.Get("local-1")
	require.NoError(t, cerr)
	assert.True(t, entry.IsLocalOnly)
}

func TestRemoteFailureRetriesOnNextCycle(t *testing.T) {
	store := &fakeStore{failWith: fmt.Errorf("%w: boom", types.ErrRemote), nextID: "srv-1"}
	o, sched, _, _ := setup(t, store)

	require.Error(t, o.Save(context.Background()))
	assert.Equal(t, StateError, o.State())

	// The next dirty cycle is the retry path.
	store.failWith = nil
	o.MarkDirty()
	sched.Fire(t)
	assert.Equal(t, StateSaved, o.State())
	assert.Equal(t, 2, store.creates)
}

func TestSaveInFlightGuard(t *testing.T) {
	store := &fakeStore{nextID: "srv-1", block: make(chan struct{})}
	o, _, _, _ := setup(t, store)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		done <- o.Save(context.Background())
	}()
	<-started

	// Wait for the first save to enter the remote call.
	require.Eventually(t, func() bool {
		o.locker.Lock()
		defer o.locker.Unlock()
		return o.inFlight
	}, time.Second, time.Millisecond)

	err := o.Save(context.Background())
	assert.ErrorIs(t, err, types.ErrSaveInFlight)

	close(store.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, store.creates)
}

func TestMutationDuringSaveMarksDirtyAgain(t *testing.T) {
	store := &fakeStore{nextID: "srv-1", block: make(chan struct{})}
	o, sched, _, source := setup(t, store)

	done := make(chan error, 1)
	go func() { done <- o.Save(context.Background()) }()

	require.Eventually(t, func() bool {
		o.locker.Lock()
		defer o.locker.Unlock()
		return o.inFlight
	}, time.Second, time.Millisecond)

	// An edit lands while the write is in flight.
	o.locker.Lock()
	source.d.Step1.Comment = "late edit"
	o.MarkDirty()
	o.locker.Unlock()

	close(store.block)
	require.NoError(t, <-done)

	assert.Equal(t, StateDirty, o.State(), "late edit must start a fresh dirty cycle")
	assert.True(t, sched.armed, "debounce must be re-armed for the late edit")

	sched.Fire(t)
	assert.Equal(t, StateSaved, o.State())
	assert.Equal(t, 1, store.updates, "late edit saves as an update after id adoption")
}

func TestLocalOnlyMode(t *testing.T) {
	sched := &manualScheduler{}
	cache := newMemCache()
	source := &draftSource{d: savableDraft()}
	o := NewOrchestrator(types.DefaultConfig(), nil, source, nil, cache, sched)
	t.Cleanup(o.Close)

	require.NoError(t, o.Save(context.Background()))
	assert.Equal(t, StateSaved, o.State())
	entry, err := cache.Get("local-1")
	require.NoError(t, err)
	assert.True(t, entry.IsLocalOnly)
}

func TestAutosaveFailureIsSilent(t *testing.T) {
	store := &fakeStore{failWith: fmt.Errorf("%w: boom", types.ErrRemote)}
	o, sched, _, _ := setup(t, store)

	o.MarkDirty()
	sched.Fire(t) // must not panic or surface anything
	assert.Equal(t, StateError, o.State())
}

func TestMarginEditTriggersNewCycle(t *testing.T) {
	store := &fakeStore{nextID: "srv-1"}
	o, sched, _, source := setup(t, store)

	require.NoError(t, o.Save(context.Background()))

	source.d.Step7 = &types.Step7{MarginType: types.MarginPercentage, MarginValue: decimal.NewFromInt(12)}
	o.MarkDirty()
	sched.Fire(t)

	assert.Equal(t, 1, store.updates)
	assert.Equal(t, StateSaved, o.State())
}
