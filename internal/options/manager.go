// Package options manages the draft's saved Options: immutable priced
// snapshots frozen from the pricing calculator's output. Options are created,
// re-margined, duplicated, and deleted only through this manager; wizard
// edits never touch an existing option.
package options

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborline/draftquote/internal/pricing"
	"github.com/harborline/draftquote/pkg/types"
)

// CopySuffix is appended to the name of a duplicated option.
const CopySuffix = " (Copy)"

// FinalizationValidity is how long an exported finalization payload stays
// valid, measured from export time.
const FinalizationValidity = 30 * 24 * time.Hour

// Metadata carries the caller-supplied fields for a new option.
type Metadata struct {
	Name        string
	Description string
	CreatedBy   string
}

// Manager operates on one draft's SavedOptions list, enforcing the option
// cap. It is not safe for concurrent use; the engine serializes access.
type Manager struct {
	draft      *types.DraftQuote
	maxOptions int
}

// NewManager returns a Manager over the given draft. A non-positive
// maxOptions falls back to the default cap.
func NewManager(draft *types.DraftQuote, maxOptions int) *Manager {
	if maxOptions <= 0 {
		maxOptions = types.DefaultMaxOptions
	}
	return &Manager{draft: draft, maxOptions: maxOptions}
}

// Create freezes the given pricing output into a new option appended to the
// draft. Returns ErrLimitExceeded when the draft is at its option cap; the
// list is left unchanged in that case.
func (m *Manager) Create(totals types.TotalsBreakdown, marginType string, marginValue decimal.Decimal, meta Metadata) (*types.Option, error) {
	if len(m.draft.SavedOptions) >= m.maxOptions {
		return nil, fmt.Errorf("creating option: %w", types.ErrLimitExceeded)
	}

	now := time.Now().UTC()
	opt := types.Option{
		OptionID:           generateID(),
		Name:               meta.Name,
		Description:        meta.Description,
		OriginalSelections: captureSelections(m.draft),
		MarginType:         marginType,
		MarginValue:        marginValue,
		Totals:             totals,
		WizardSnapshot:     captureSnapshot(m.draft),
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          meta.CreatedBy,
	}
	if opt.Name == "" {
		opt.Name = fmt.Sprintf("Option %d", len(m.draft.SavedOptions)+1)
	}

	m.draft.SavedOptions = append(m.draft.SavedOptions, opt)
	m.draft.Touch()
	return &m.draft.SavedOptions[len(m.draft.SavedOptions)-1], nil
}

// Get returns the option with the given id, or ErrNotFound.
func (m *Manager) Get(optionID string) (*types.Option, error) {
	for i := range m.draft.SavedOptions {
		if m.draft.SavedOptions[i].OptionID == optionID {
			return &m.draft.SavedOptions[i], nil
		}
	}
	return nil, fmt.Errorf("option %s: %w", optionID, types.ErrNotFound)
}

// UpdateMargin re-applies the margin against the option's frozen component
// subtotals. Live wizard data is deliberately not consulted: an option's
// haulage, sea-freight, and misc totals stay as frozen at creation time.
func (m *Manager) UpdateMargin(optionID, marginType string, marginValue decimal.Decimal) (*types.Option, error) {
	opt, err := m.Get(optionID)
	if err != nil {
		return nil, err
	}

	frozen := types.TotalsBreakdown{
		HaulageTotal:    opt.Totals.HaulageTotal,
		SeaFreightTotal: opt.Totals.SeaFreightTotal,
		MiscTotal:       opt.Totals.MiscTotal,
		Currency:        opt.Totals.Currency,
	}
	opt.Totals = pricing.ApplyMargin(frozen, marginType, marginValue)
	opt.MarginType = marginType
	opt.MarginValue = marginValue
	opt.UpdatedAt = time.Now().UTC()
	m.draft.Touch()
	return opt, nil
}

// Delete removes the option with the given id. Returns ErrNotFound if the
// id is unknown. Clears the working-option pointer when it referenced the
// deleted option.
func (m *Manager) Delete(optionID string) error {
	for i := range m.draft.SavedOptions {
		if m.draft.SavedOptions[i].OptionID == optionID {
			m.draft.SavedOptions = append(m.draft.SavedOptions[:i], m.draft.SavedOptions[i+1:]...)
			if m.draft.CurrentWorkingOptionID == optionID {
				m.draft.CurrentWorkingOptionID = ""
			}
			m.draft.Touch()
			return nil
		}
	}
	return fmt.Errorf("option %s: %w", optionID, types.ErrNotFound)
}

// Duplicate clones an existing option under a new id with a suffixed name
// and fresh timestamps. The clone counts against the option cap.
func (m *Manager) Duplicate(optionID string) (*types.Option, error) {
	if len(m.draft.SavedOptions) >= m.maxOptions {
		return nil, fmt.Errorf("duplicating option: %w", types.ErrLimitExceeded)
	}

	src, err := m.Get(optionID)
	if err != nil {
		return nil, err
	}

	clone := src.Clone()
	clone.OptionID = generateID()
	clone.Name = src.Name + CopySuffix
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now

	m.draft.SavedOptions = append(m.draft.SavedOptions, clone)
	m.draft.Touch()
	return &m.draft.SavedOptions[len(m.draft.SavedOptions)-1], nil
}

// ExportForFinalization produces the payload handed to the quote-creation
// collaborator. With no optionIDs, all saved options are selected. Returns
// ErrNoOptions when the draft has no saved options, and ErrNotFound when a
// requested id is unknown.
func (m *Manager) ExportForFinalization(optionIDs []string, comments string) (*types.FinalizationPayload, error) {
	if len(m.draft.SavedOptions) == 0 {
		return nil, fmt.Errorf("exporting for finalization: %w", types.ErrNoOptions)
	}

	selected := optionIDs
	if len(selected) == 0 {
		selected = make([]string, 0, len(m.draft.SavedOptions))
		for _, opt := range m.draft.SavedOptions {
			selected = append(selected, opt.OptionID)
		}
	} else {
		for _, id := range selected {
			if _, err := m.Get(id); err != nil {
				return nil, err
			}
		}
	}

	return &types.FinalizationPayload{
		DraftID:           m.draft.Identity(),
		RequestQuoteID:    m.draft.RequestQuoteID,
		SelectedOptionIDs: selected,
		ExpirationDate:    time.Now().UTC().Add(FinalizationValidity),
		Comments:          comments,
	}, nil
}

// captureSelections records the ids of the selections live in the wizard.
func captureSelections(d *types.DraftQuote) types.OriginalSelections {
	sel := types.OriginalSelections{}
	if d.Step4 != nil {
		sel.HaulageOfferID = d.Step4.OfferID
	}
	if d.Step5 != nil {
		for _, sf := range d.Step5.Selections {
			sel.SeaFreightIDs = append(sel.SeaFreightIDs, sf.ID)
		}
	}
	if d.Step6 != nil {
		for _, svc := range d.Step6.Selections {
			sel.MiscIDs = append(sel.MiscIDs, svc.ID)
		}
	}
	return sel
}

// captureSnapshot deep-copies the pricing-relevant steps for the option's
// audit trail. The snapshot is inert: nothing ever recomputes from it.
func captureSnapshot(d *types.DraftQuote) *types.WizardSnapshot {
	snap := types.WizardSnapshot{}
	if d.Step4 != nil {
		s4 := *d.Step4
		snap.Step4 = &s4
	}
	if d.Step5 != nil {
		s5 := types.Step5{Selections: make([]types.SeaFreightSelection, len(d.Step5.Selections))}
		for i, sel := range d.Step5.Selections {
			cp := sel
			cp.Surcharges = append([]types.Surcharge(nil), sel.Surcharges...)
			s5.Selections[i] = cp
		}
		snap.Step5 = &s5
	}
	if d.Step6 != nil {
		s6 := types.Step6{Selections: append([]types.MiscSelection(nil), d.Step6.Selections...)}
		snap.Step6 = &s6
	}
	if snap.Step4 == nil && snap.Step5 == nil && snap.Step6 == nil {
		return nil
	}
	return &snap
}

// generateID returns a UUID v7 for option ids, falling back to v4 if v7
// generation fails.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
