package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/draftquote/internal/options"
	"github.com/harborline/draftquote/internal/persist"
	"github.com/harborline/draftquote/internal/wire"
	"github.com/harborline/draftquote/pkg/types"
)

// stubStore implements remote.Store in memory.
type stubStore struct {
	creates int
	updates int
	nextID  string
	getResp *wire.WireResponse
	getErr  error
}

func (s *stubStore) CreateDraft(ctx context.Context, req *wire.WireCreate) (*wire.WireResponse, error) {
	s.creates++
	return &wire.WireResponse{DraftQuoteID: s.nextID}, nil
}

func (s *stubStore) UpdateDraft(ctx context.Context, draftID string, req *wire.WireUpdate) (*wire.WireResponse, error) {
	s.updates++
	return &wire.WireResponse{DraftQuoteID: draftID}, nil
}

func (s *stubStore) GetDraft(ctx context.Context, draftID string) (*wire.WireResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getResp, nil
}

// stubCache implements types.DraftCache in memory.
type stubCache struct {
	entries map[string]types.CacheEntry
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]types.CacheEntry)}
}

func (c *stubCache) Attach(config types.Config) error { return nil }
func (c *stubCache) Detach() error                    { return nil }

func (c *stubCache) Put(entry types.CacheEntry) error {
	c.entries[entry.Key] = entry
	return nil
}

func (c *stubCache) Get(key string) (*types.CacheEntry, error) {
	e, ok := c.entries[key]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &e, nil
}

func (c *stubCache) Delete(key string) error {
	delete(c.entries, key)
	return nil
}

func (c *stubCache) List() ([]types.CacheEntry, error) { return nil, nil }
func (c *stubCache) Cleanup(retain int) (int, error)   { return 0, nil }

func newTestSession(t *testing.T, store *stubStore) *Session {
	t.Helper()
	cfg := types.DefaultConfig()
	cfg.DebounceDelay = time.Hour // keep the autosave timer out of tests
	var s *Session
	if store == nil {
		s = NewSession(cfg, nil, newStubCache())
	} else {
		s = NewSession(cfg, store, newStubCache())
	}
	t.Cleanup(s.Close)
	return s
}

func fillPricedDraft(s *Session) {
	s.SetRequestQuote("req-1", "ops@harborline.example")
	s.SetStep1(types.Step1{
		Customer:    types.Customer{CompanyName: "Acme Forwarding"},
		Origin:      types.Location{City: "Le Havre"},
		Destination: types.Location{City: "Singapore"},
	})
	s.SetStep3(types.Step3{Containers: []types.Container{
		{ID: "c1", Type: "40HC", Quantity: 3, TEU: 2},
	}})
	s.SetStep4(types.Step4{
		HaulierName: "RoadCo",
		Calculation: types.HaulageCalculation{
			TotalAmount: decimal.NewFromInt(100),
			Currency:    "EUR",
		},
	})
	s.SetStep5(types.Step5{Selections: []types.SeaFreightSelection{
		{
			ID:            "sf1",
			CarrierName:   "BlueWave",
			ContainerType: "40HC",
			BasePrice:     decimal.NewFromInt(200),
			Currency:      "EUR",
			Surcharges:    []types.Surcharge{{Name: "BAF", Value: decimal.NewFromInt(50)}},
		},
	}})
}

func TestNewSessionStartsLocalOnly(t *testing.T) {
	s := newTestSession(t, nil)

	snap := s.Snapshot()
	assert.NotEmpty(t, snap.LocalID)
	assert.Empty(t, snap.DraftID)
	assert.False(t, snap.HasServerIdentity())
	assert.Equal(t, 1, s.CurrentStep())
	assert.Equal(t, persist.StateIdle, s.SaveState())
}

func TestUpdateMarksDirtyAndReprices(t *testing.T) {
	s := newTestSession(t, nil)

	fillPricedDraft(s)
	assert.Equal(t, persist.StateDirty, s.SaveState())

	totals := s.Totals()
	assert.True(t, decimal.NewFromInt(100).Equal(totals.HaulageTotal))
	assert.True(t, decimal.NewFromInt(750).Equal(totals.SeaFreightTotal))
	assert.True(t, decimal.NewFromInt(850).Equal(totals.SubTotal))

	s.SetStep7(types.Step7{MarginType: types.MarginPercentage, MarginValue: decimal.NewFromInt(10)})
	totals = s.Totals()
	assert.True(t, decimal.NewFromInt(85).Equal(totals.MarginAmount))
	assert.True(t, decimal.NewFromInt(935).Equal(totals.FinalTotal))
}

func TestCurrentStepFollowsData(t *testing.T) {
	s := newTestSession(t, nil)
	assert.Equal(t, 1, s.CurrentStep())

	fillPricedDraft(s)
	assert.Equal(t, 5, s.CurrentStep())

	s.SetStep7(types.Step7{MarginType: types.MarginPercentage, MarginValue: decimal.NewFromInt(10)})
	assert.Equal(t, 7, s.CurrentStep())
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newTestSession(t, nil)
	fillPricedDraft(s)

	snap := s.Snapshot()
	snap.Step4.HaulierName = "mutated"

	assert.Equal(t, "RoadCo", s.Snapshot().Step4.HaulierName)
}

func TestAddOptionFreezesTotals(t *testing.T) {
	s := newTestSession(t, nil)
	fillPricedDraft(s)
	s.SetStep7(types.Step7{MarginType: types.MarginPercentage, MarginValue: decimal.NewFromInt(10)})

	opt, err := s.AddOption(options.Metadata{Name: "Standard"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(935).Equal(opt.Totals.FinalTotal))
	assert.Equal(t, opt.OptionID, s.Snapshot().CurrentWorkingOptionID)

	// Later wizard edits must not touch the frozen option.
	s.SetStep4(types.Step4{Calculation: types.HaulageCalculation{
		TotalAmount: decimal.NewFromInt(9999),
	}})
	got, err := s.Option(opt.OptionID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Totals.HaulageTotal))
}

func TestAddOptionCap(t *testing.T) {
	s := newTestSession(t, nil)
	fillPricedDraft(s)

	for i := 0; i < types.DefaultMaxOptions; i++ {
		_, err := s.AddOption(options.Metadata{})
		require.NoError(t, err)
	}
	_, err := s.AddOption(options.Metadata{})
	assert.ErrorIs(t, err, types.ErrLimitExceeded)
}

func TestUpdateOptionMarginUsesFrozenComponents(t *testing.T) {
	s := newTestSession(t, nil)
	fillPricedDraft(s)

	opt, err := s.AddOption(options.Metadata{})
	require.NoError(t, err)

	// Live data changes, then the margin is re-applied: the result comes
	// from the option's frozen subtotal of 850.
	s.SetStep4(types.Step4{Calculation: types.HaulageCalculation{
		TotalAmount: decimal.NewFromInt(9999),
	}})
	updated, err := s.UpdateOptionMargin(opt.OptionID, types.MarginPercentage, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(170).Equal(updated.Totals.MarginAmount))
	assert.True(t, decimal.NewFromInt(1020).Equal(updated.Totals.FinalTotal))
}

func TestDeleteOptionClearsWorkingPointer(t *testing.T) {
	s := newTestSession(t, nil)
	fillPricedDraft(s)

	opt, err := s.AddOption(options.Metadata{})
	require.NoError(t, err)
	require.Equal(t, opt.OptionID, s.Snapshot().CurrentWorkingOptionID)

	require.NoError(t, s.DeleteOption(opt.OptionID))
	assert.Empty(t, s.Snapshot().CurrentWorkingOptionID)
	assert.ErrorIs(t, s.DeleteOption(opt.OptionID), types.ErrNotFound)
}

func TestDuplicateOption(t *testing.T) {
	s := newTestSession(t, nil)
	fillPricedDraft(s)

	opt, err := s.AddOption(options.Metadata{Name: "Standard"})
	require.NoError(t, err)

	dup, err := s.DuplicateOption(opt.OptionID)
	require.NoError(t, err)
	assert.NotEqual(t, opt.OptionID, dup.OptionID)
	assert.Equal(t, "Standard (Copy)", dup.Name)
	assert.Len(t, s.Options(), 2)
}

func TestSetWorkingOption(t *testing.T) {
	s := newTestSession(t, nil)
	fillPricedDraft(s)

	first, err := s.AddOption(options.Metadata{})
	require.NoError(t, err)
	second, err := s.AddOption(options.Metadata{})
	require.NoError(t, err)
	require.Equal(t, second.OptionID, s.Snapshot().CurrentWorkingOptionID)

	require.NoError(t, s.SetWorkingOption(first.OptionID))
	assert.Equal(t, first.OptionID, s.Snapshot().CurrentWorkingOptionID)
	assert.ErrorIs(t, s.SetWorkingOption("missing"), types.ErrNotFound)
}

func TestFinalizeSelectsAllByDefault(t *testing.T) {
	s := newTestSession(t, nil)
	fillPricedDraft(s)

	_, err := s.Finalize(nil, "")
	assert.ErrorIs(t, err, types.ErrNoOptions)

	a, err := s.AddOption(options.Metadata{})
	require.NoError(t, err)
	b, err := s.AddOption(options.Metadata{})
	require.NoError(t, err)

	payload, err := s.Finalize(nil, "rush order")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.OptionID, b.OptionID}, payload.SelectedOptionIDs)
	assert.Equal(t, "rush order", payload.Comments)
}

func TestSaveAdoptsServerIdentity(t *testing.T) {
	store := &stubStore{nextID: "srv-7"}
	s := newTestSession(t, store)
	fillPricedDraft(s)

	require.NoError(t, s.Save(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, "srv-7", snap.DraftID)
	assert.True(t, snap.HasServerIdentity())
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, persist.StateSaved, s.SaveState())
}

func TestLoadFromRemote(t *testing.T) {
	store := &stubStore{getResp: &wire.WireResponse{
		DraftQuoteID:   "srv-9",
		RequestQuoteID: "req-9",
		Customer:       wire.WireCustomer{Name: "Acme Forwarding"},
	}}
	s := newTestSession(t, store)

	require.NoError(t, s.Load(context.Background(), "srv-9"))
	snap := s.Snapshot()
	assert.Equal(t, "srv-9", snap.DraftID)
	assert.Equal(t, "req-9", snap.RequestQuoteID)
	assert.Equal(t, persist.StateIdle, s.SaveState())
}

func TestLoadFallsBackToCache(t *testing.T) {
	store := &stubStore{getErr: errors.New("remote down")}
	cache := newStubCache()
	cfg := types.DefaultConfig()
	cfg.DebounceDelay = time.Hour
	s := NewSession(cfg, store, cache)
	t.Cleanup(s.Close)

	id := "srv-3"
	cache.entries["srv-3"] = types.CacheEntry{
		Key:     "srv-3",
		DraftID: &id,
		Payload: &types.DraftQuote{DraftID: "srv-3", RequestQuoteID: "req-3"},
	}

	require.NoError(t, s.Load(context.Background(), "srv-3"))
	assert.Equal(t, "req-3", s.Snapshot().RequestQuoteID)
}

func TestLoadUnknownDraft(t *testing.T) {
	s := newTestSession(t, nil)
	err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
