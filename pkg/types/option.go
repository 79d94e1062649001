package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Option is an independently priced snapshot of the wizard's state, frozen
// at creation time. Wizard edits never mutate an existing Option; an Option
// changes only through the explicit update path on the option manager.
type Option struct {
	OptionID    string `json:"optionId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// OriginalSelections records the ids of the selections that were live
	// when the option was created. Historical pointers, not live links.
	OriginalSelections OriginalSelections `json:"originalSelections"`

	MarginType  string          `json:"marginType"`
	MarginValue decimal.Decimal `json:"marginValue"`

	// Totals is the frozen breakdown. It is recomputed only when the option
	// itself is explicitly edited, from its own frozen components.
	Totals TotalsBreakdown `json:"totals"`

	// WizardSnapshot is an inert audit copy of the step 4-6 data at creation
	// time. It is never read back into any computation.
	WizardSnapshot *WizardSnapshot `json:"wizardSnapshot,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// OriginalSelections holds the selection ids captured at option creation.
type OriginalSelections struct {
	HaulageOfferID string   `json:"haulageOfferId,omitempty"`
	SeaFreightIDs  []string `json:"seaFreightIds,omitempty"`
	MiscIDs        []string `json:"miscIds,omitempty"`
}

// WizardSnapshot is the audit copy of the pricing-relevant steps.
type WizardSnapshot struct {
	Step4 *Step4 `json:"step4,omitempty"`
	Step5 *Step5 `json:"step5,omitempty"`
	Step6 *Step6 `json:"step6,omitempty"`
}

// Clone returns a deep copy of the option. Slices and the wizard snapshot
// are copied so the clone shares no mutable state with the original.
func (o Option) Clone() Option {
	out := o
	out.OriginalSelections.SeaFreightIDs = append([]string(nil), o.OriginalSelections.SeaFreightIDs...)
	out.OriginalSelections.MiscIDs = append([]string(nil), o.OriginalSelections.MiscIDs...)
	if o.WizardSnapshot != nil {
		snap := WizardSnapshot{}
		if o.WizardSnapshot.Step4 != nil {
			s4 := *o.WizardSnapshot.Step4
			snap.Step4 = &s4
		}
		if o.WizardSnapshot.Step5 != nil {
			s5 := Step5{Selections: make([]SeaFreightSelection, len(o.WizardSnapshot.Step5.Selections))}
			for i, sel := range o.WizardSnapshot.Step5.Selections {
				cp := sel
				cp.Surcharges = append([]Surcharge(nil), sel.Surcharges...)
				s5.Selections[i] = cp
			}
			snap.Step5 = &s5
		}
		if o.WizardSnapshot.Step6 != nil {
			s6 := Step6{Selections: append([]MiscSelection(nil), o.WizardSnapshot.Step6.Selections...)}
			snap.Step6 = &s6
		}
		out.WizardSnapshot = &snap
	}
	return out
}

// FinalizationPayload is handed to the quote-creation collaborator when the
// user turns one or more options into a final quote.
type FinalizationPayload struct {
	DraftID           string    `json:"draftId"`
	RequestQuoteID    string    `json:"requestQuoteId"`
	SelectedOptionIDs []string  `json:"selectedOptionIds"`
	ExpirationDate    time.Time `json:"expirationDate"`
	Comments          string    `json:"comments,omitempty"`
}
