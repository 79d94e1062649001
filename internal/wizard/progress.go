// Package wizard derives the quotation wizard's progress from the draft data
// model. Presence of data is the only signal: the current step is the
// furthest step that holds meaningful input, so editing an earlier step
// never regresses progress.
package wizard

import "github.com/harborline/draftquote/pkg/types"

// StepCount is the number of wizard steps.
const StepCount = 7

// stepPredicates maps each step to its presence check. Each predicate is
// OR-composed over the alternative fields that upstream sources may populate,
// so stale or duplicate fields still count as presence. Keep every predicate
// here; do not duplicate presence checks elsewhere.
var stepPredicates = [StepCount]func(*types.DraftQuote) bool{
	hasStep1,
	hasStep2,
	hasStep3,
	hasStep4,
	hasStep5,
	hasStep6,
	hasStep7,
}

// InferCurrentStep returns the furthest step in [1,7] with meaningful data.
// Safe on partially populated or nil input; a draft with no data is at step 1.
func InferCurrentStep(d *types.DraftQuote) int {
	if d == nil {
		return 1
	}
	current := 1
	for i, present := range stepPredicates {
		if present(d) {
			current = i + 1
		}
	}
	return current
}

func hasStep1(d *types.DraftQuote) bool {
	s := d.Step1
	if s == nil {
		return false
	}
	return s.Customer.CompanyID != "" ||
		s.Customer.CompanyName != "" ||
		s.Origin.City != "" ||
		s.Destination.City != "" ||
		s.ProductID != "" ||
		s.ProductName != ""
}

func hasStep2(d *types.DraftQuote) bool {
	return d.Step2 != nil && len(d.Step2.SelectedServices) > 0
}

func hasStep3(d *types.DraftQuote) bool {
	return d.Step3 != nil && len(d.Step3.Containers) > 0
}

func hasStep4(d *types.DraftQuote) bool {
	s := d.Step4
	if s == nil {
		return false
	}
	return s.HaulierID != "" || s.OfferID != ""
}

func hasStep5(d *types.DraftQuote) bool {
	return d.Step5 != nil && len(d.Step5.Selections) > 0
}

func hasStep6(d *types.DraftQuote) bool {
	return d.Step6 != nil && len(d.Step6.Selections) > 0
}

func hasStep7(d *types.DraftQuote) bool {
	s := d.Step7
	if s == nil {
		return false
	}
	return s.IsReadyToGenerate || s.MarginType != "" || !s.MarginValue.IsZero()
}
