// Package engine exposes the quotation draft engine: one Session per draft,
// serializing wizard edits, pricing, option management, and persistence
// behind a single mutex. The session is the only writer of its draft; every
// mutation flows through one entry point that re-prices the draft and marks
// it dirty for autosave.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborline/draftquote/internal/options"
	"github.com/harborline/draftquote/internal/persist"
	"github.com/harborline/draftquote/internal/pricing"
	"github.com/harborline/draftquote/internal/remote"
	"github.com/harborline/draftquote/internal/wire"
	"github.com/harborline/draftquote/internal/wizard"
	"github.com/harborline/draftquote/pkg/types"
)

// Compile-time interface check.
var _ persist.DraftSource = (*Session)(nil)

// Session is the engine facade over a single draft. All methods are safe for
// concurrent use; the session's mutex also serializes the persistence
// layer's timer callbacks.
type Session struct {
	mu    sync.Mutex
	cfg   types.Config
	draft *types.DraftQuote
	orch  *persist.Orchestrator
	store remote.Store
	cache types.DraftCache
}

// NewSession starts a session over a fresh draft with a local identity. A
// nil store runs the session local-only; a nil cache disables the local
// fallback copy.
func NewSession(cfg types.Config, store remote.Store, cache types.DraftCache) *Session {
	now := time.Now().UTC()
	s := &Session{
		cfg:   cfg,
		store: store,
		cache: cache,
		draft: &types.DraftQuote{
			LocalID:      newLocalID(),
			SavedOptions: []types.Option{},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	s.orch = persist.NewOrchestrator(cfg, &s.mu, s, store, cache, nil)
	return s
}

// Draft returns the live draft for the persistence layer. Callers outside
// that path want Snapshot.
func (s *Session) Draft() *types.DraftQuote {
	return s.draft
}

// Close cancels any pending autosave. Pending edits stay in the local cache;
// they are not flushed to the remote.
func (s *Session) Close() {
	s.orch.Close()
}

// Update applies a mutation to the draft, re-prices it, and marks it dirty
// for autosave. This is the single entry point for wizard edits.
func (s *Session) Update(apply func(d *types.DraftQuote)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(s.draft)
	s.reprice()
	s.draft.Touch()
	s.orch.MarkDirty()
}

// SetRequestQuote binds the draft to its originating quote request.
func (s *Session) SetRequestQuote(requestQuoteID, emailUser string) {
	s.Update(func(d *types.DraftQuote) {
		d.RequestQuoteID = requestQuoteID
		d.EmailUser = emailUser
	})
}

// SetStep1 replaces the customer and route step.
func (s *Session) SetStep1(step types.Step1) {
	s.Update(func(d *types.DraftQuote) { d.Step1 = &step })
}

// SetStep2 replaces the service selection step.
func (s *Session) SetStep2(step types.Step2) {
	s.Update(func(d *types.DraftQuote) { d.Step2 = &step })
}

// SetStep3 replaces the container step.
func (s *Session) SetStep3(step types.Step3) {
	s.Update(func(d *types.DraftQuote) { d.Step3 = &step })
}

// SetStep4 replaces the haulage step.
func (s *Session) SetStep4(step types.Step4) {
	s.Update(func(d *types.DraftQuote) { d.Step4 = &step })
}

// SetStep5 replaces the sea freight step.
func (s *Session) SetStep5(step types.Step5) {
	s.Update(func(d *types.DraftQuote) { d.Step5 = &step })
}

// SetStep6 replaces the miscellaneous services step.
func (s *Session) SetStep6(step types.Step6) {
	s.Update(func(d *types.DraftQuote) { d.Step6 = &step })
}

// SetStep7 replaces the margin step. Totals are recomputed under the new
// margin immediately.
func (s *Session) SetStep7(step types.Step7) {
	s.Update(func(d *types.DraftQuote) { d.Step7 = &step })
}

// Snapshot returns a deep copy of the draft, safe to read and serialize
// while the session keeps mutating.
func (s *Session) Snapshot() *types.DraftQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDraft(s.draft)
}

// CurrentStep infers the wizard step the draft has progressed to.
func (s *Session) CurrentStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wizard.InferCurrentStep(s.draft)
}

// Totals returns the current pricing breakdown.
func (s *Session) Totals() types.TotalsBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.Totals == nil {
		marginType, marginValue := marginOf(s.draft)
		return pricing.ComputeTotals(s.draft, marginType, marginValue)
	}
	return *s.draft.Totals
}

// SaveState reports the persistence state machine's current state.
func (s *Session) SaveState() persist.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orch.State()
}

// Save persists the draft immediately, bypassing the autosave debounce.
func (s *Session) Save(ctx context.Context) error {
	return s.orch.Save(ctx)
}

// Load replaces the session's draft with the one stored under draftID. The
// remote store is the source of truth; the local cache answers when the
// remote is unreachable or the session runs local-only. Unsaved edits to the
// previous draft are discarded.
func (s *Session) Load(ctx context.Context, draftID string) error {
	draft, err := s.fetchDraft(ctx, draftID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
	s.reprice()
	s.orch.Reset()
	return nil
}

func (s *Session) fetchDraft(ctx context.Context, draftID string) (*types.DraftQuote, error) {
	if s.store != nil {
		resp, err := s.store.GetDraft(ctx, draftID)
		if err == nil {
			return wire.FromResponse(resp)
		}
		if s.cache == nil {
			return nil, err
		}
		// Remote unreachable; fall through to the cached copy.
	}
	if s.cache == nil {
		return nil, fmt.Errorf("draft %s: %w", draftID, types.ErrNotFound)
	}
	entry, err := s.cache.Get(draftID)
	if err != nil {
		return nil, fmt.Errorf("draft %s: %w", draftID, err)
	}
	if entry.Payload == nil {
		return nil, fmt.Errorf("draft %s payload: %w", draftID, types.ErrInvalidData)
	}
	return cloneDraft(entry.Payload), nil
}

// AddOption freezes the current pricing into a new saved option and makes it
// the working option.
func (s *Session) AddOption(meta options.Metadata) (*types.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marginType, marginValue := marginOf(s.draft)
	totals := pricing.ComputeTotals(s.draft, marginType, marginValue)

	opt, err := s.manager().Create(totals, marginType, marginValue, meta)
	if err != nil {
		return nil, err
	}
	s.draft.CurrentWorkingOptionID = opt.OptionID
	s.orch.MarkDirty()
	result := opt.Clone()
	return &result, nil
}

// Option returns a copy of the option with the given id.
func (s *Session) Option(optionID string) (*types.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opt, err := s.manager().Get(optionID)
	if err != nil {
		return nil, err
	}
	result := opt.Clone()
	return &result, nil
}

// Options returns copies of all saved options in creation order.
func (s *Session) Options() []types.Option {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Option, 0, len(s.draft.SavedOptions))
	for _, opt := range s.draft.SavedOptions {
		out = append(out, opt.Clone())
	}
	return out
}

// UpdateOptionMargin re-applies a margin to an option's frozen totals.
func (s *Session) UpdateOptionMargin(optionID, marginType string, marginValue decimal.Decimal) (*types.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opt, err := s.manager().UpdateMargin(optionID, marginType, marginValue)
	if err != nil {
		return nil, err
	}
	s.orch.MarkDirty()
	result := opt.Clone()
	return &result, nil
}

// DuplicateOption clones an option under a new id.
func (s *Session) DuplicateOption(optionID string) (*types.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opt, err := s.manager().Duplicate(optionID)
	if err != nil {
		return nil, err
	}
	s.orch.MarkDirty()
	result := opt.Clone()
	return &result, nil
}

// DeleteOption removes an option from the draft.
func (s *Session) DeleteOption(optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.manager().Delete(optionID); err != nil {
		return err
	}
	s.orch.MarkDirty()
	return nil
}

// SetWorkingOption points the draft at the option currently being refined.
func (s *Session) SetWorkingOption(optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.manager().Get(optionID); err != nil {
		return err
	}
	s.draft.CurrentWorkingOptionID = optionID
	s.draft.Touch()
	s.orch.MarkDirty()
	return nil
}

// Finalize builds the payload handed to quote generation for the selected
// options. A nil optionIDs selects all saved options. The draft itself is
// not mutated.
func (s *Session) Finalize(optionIDs []string, comments string) (*types.FinalizationPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager().ExportForFinalization(optionIDs, comments)
}

// manager returns an option manager over the current draft. Managers are
// cheap and must not outlive a Load, so one is built per call.
func (s *Session) manager() *options.Manager {
	return options.NewManager(s.draft, s.cfg.MaxOptions)
}

// reprice recomputes the totals under the draft's margin. Caller holds the
// mutex.
func (s *Session) reprice() {
	marginType, marginValue := marginOf(s.draft)
	totals := pricing.ComputeTotals(s.draft, marginType, marginValue)
	s.draft.Totals = &totals
}

// marginOf reads the draft's margin settings, defaulting to a zero
// percentage margin before step 7 is reached.
func marginOf(d *types.DraftQuote) (string, decimal.Decimal) {
	if d.Step7 == nil {
		return types.MarginPercentage, decimal.Zero
	}
	return d.Step7.MarginType, d.Step7.MarginValue
}

// cloneDraft deep-copies a draft through its JSON form.
func cloneDraft(d *types.DraftQuote) *types.DraftQuote {
	raw, err := json.Marshal(d)
	if err != nil {
		cp := *d
		return &cp
	}
	var out types.DraftQuote
	if err := json.Unmarshal(raw, &out); err != nil {
		cp := *d
		return &cp
	}
	return &out
}

func newLocalID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
