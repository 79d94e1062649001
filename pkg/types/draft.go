package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftQuote is the root of the in-progress quotation. It accumulates data
// across wizard steps 1-7, carries the last computed pricing breakdown, and
// owns the list of frozen Options. A draft has a locally generated identity
// (LocalID) until the first successful remote create assigns a DraftID;
// afterwards all remote writes are updates.
type DraftQuote struct {
	LocalID        string `json:"localId,omitempty"`
	DraftID        string `json:"draftId,omitempty"`
	RequestQuoteID string `json:"requestQuoteId"`
	EmailUser      string `json:"emailUser,omitempty"`

	Step1 *Step1 `json:"step1,omitempty"`
	Step2 *Step2 `json:"step2,omitempty"`
	Step3 *Step3 `json:"step3,omitempty"`
	Step4 *Step4 `json:"step4,omitempty"`
	Step5 *Step5 `json:"step5,omitempty"`
	Step6 *Step6 `json:"step6,omitempty"`
	Step7 *Step7 `json:"step7,omitempty"`

	// Totals is derived from the steps and always recomputable; it is kept
	// on the draft so the last breakdown survives serialization.
	Totals *TotalsBreakdown `json:"totals,omitempty"`

	SavedOptions           []Option `json:"savedOptions"`
	CurrentWorkingOptionID string   `json:"currentWorkingOptionId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity returns the server-assigned DraftID when present, otherwise the
// local id. Empty only for a zero-value draft.
func (d *DraftQuote) Identity() string {
	if d.DraftID != "" {
		return d.DraftID
	}
	return d.LocalID
}

// HasServerIdentity reports whether the draft has been created remotely.
func (d *DraftQuote) HasServerIdentity() bool {
	return d.DraftID != ""
}

// Touch updates the modification timestamp.
func (d *DraftQuote) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// Step1 holds party and route data: the requesting customer, origin and
// destination, and the product being shipped.
type Step1 struct {
	Customer    Customer `json:"customer"`
	Origin      Location `json:"origin"`
	Destination Location `json:"destination"`
	ProductID   string   `json:"productId,omitempty"`
	ProductName string   `json:"productName,omitempty"`
	Incoterm    string   `json:"incoterm,omitempty"`
	Comment     string   `json:"comment,omitempty"`
}

// Customer identifies the requesting party.
type Customer struct {
	CompanyID    string `json:"companyId,omitempty"`
	CompanyName  string `json:"companyName,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Location is a city/country pair on the route.
type Location struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// Step2 holds the selected forwarding services.
type Step2 struct {
	SelectedServices []ServiceSelection `json:"selectedServices,omitempty"`
}

// ServiceSelection references one service chosen in step 2.
type ServiceSelection struct {
	ServiceID string `json:"serviceId"`
	Label     string `json:"label,omitempty"`
}

// Step3 holds the container list for the shipment.
type Step3 struct {
	Containers []Container `json:"containers,omitempty"`
}

// Container is one container line: type, unit count, and TEU factor.
type Container struct {
	ID       string  `json:"id,omitempty"`
	Type     string  `json:"type"`
	Quantity int     `json:"quantity"`
	TEU      float64 `json:"teu,omitempty"`
}

// TotalQuantity sums container unit counts across all lines.
func (s *Step3) TotalQuantity() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, c := range s.Containers {
		total += c.Quantity
	}
	return total
}

// TotalTEU sums quantity-weighted TEU factors across all lines.
func (s *Step3) TotalTEU() float64 {
	if s == nil {
		return 0
	}
	total := 0.0
	for _, c := range s.Containers {
		total += c.TEU * float64(c.Quantity)
	}
	return total
}

// Step4 holds the chosen haulage offer. Calculation carries the haulier's
// precomputed amounts; the pricing calculator takes them as-is without
// further per-unit multiplication.
type Step4 struct {
	HaulierID   string             `json:"haulierId,omitempty"`
	HaulierName string             `json:"haulierName,omitempty"`
	OfferID     string             `json:"offerId,omitempty"`
	PickupCity  string             `json:"pickupCity,omitempty"`
	Calculation HaulageCalculation `json:"calculation"`
}

// HaulageCalculation is the haulier's precomputed price for the selected
// offer. TotalAmount is preferred; Subtotal is the fallback when the haulier
// did not report a grand total.
type HaulageCalculation struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency,omitempty"`
}

// Step5 holds the sea-freight selections.
type Step5 struct {
	Selections []SeaFreightSelection `json:"selections,omitempty"`
}

// SeaFreightSelection is one carrier offer: a base price per container unit
// plus named surcharges.
type SeaFreightSelection struct {
	ID            string          `json:"id"`
	CarrierName   string          `json:"carrierName,omitempty"`
	ContainerType string          `json:"containerType,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Currency      string          `json:"currency,omitempty"`
	Surcharges    []Surcharge     `json:"surcharges,omitempty"`
}

// Surcharge is a named amount added to a sea-freight base price.
type Surcharge struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Step6 holds the ancillary service selections.
type Step6 struct {
	Selections []MiscSelection `json:"selections,omitempty"`
}

// MiscSelection is one ancillary service chosen in step 6.
type MiscSelection struct {
	ID           string         `json:"id"`
	SupplierName string         `json:"supplierName,omitempty"`
	ServiceName  string         `json:"serviceName,omitempty"`
	Pricing      ServicePricing `json:"pricing"`
}

// ServicePricing carries the possible price fields reported by upstream
// suppliers. Resolution order is UnitPrice, TotalPrice, Price, then the raw
// string field parsed as a decimal; the first positive value wins.
type ServicePricing struct {
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Price      decimal.Decimal `json:"price"`
	RawPrice   string          `json:"rawPrice,omitempty"`
}

// Step7 is the finalization record: the chosen margin and readiness flag.
type Step7 struct {
	MarginType        string          `json:"marginType,omitempty"`
	MarginValue       decimal.Decimal `json:"marginValue"`
	IsReadyToGenerate bool            `json:"isReadyToGenerate"`
}
