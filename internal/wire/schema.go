// Package wire maps between the internal draft model and the remote store's
// request/response schema. Each direction is a deterministic field-by-field
// structural transform, lossless for known fields. Validation collects every
// missing required field in one pass.
package wire

import "github.com/shopspring/decimal"

// WireCreate is the request body for creating a draft remotely.
type WireCreate struct {
	RequestQuoteID string       `json:"requestQuoteId"`
	Customer       WireCustomer `json:"customer"`
	Shipment       WireShipment `json:"shipment"`
	Wizard         WireWizard   `json:"wizard"`
}

// WireUpdate is the request body for updating an existing draft. It carries
// everything a create does plus the saved options and notes.
type WireUpdate struct {
	WireCreate
	Options []WireOption `json:"options"`
	Notes   string       `json:"notes,omitempty"`
}

// WireResponse is the remote store's echo of a draft, carrying the
// server-assigned id. Optional sub-objects may be absent for steps the user
// never touched.
type WireResponse struct {
	DraftQuoteID   string       `json:"draftQuoteId"`
	RequestQuoteID string       `json:"requestQuoteId"`
	Customer       WireCustomer `json:"customer"`
	Shipment       WireShipment `json:"shipment"`
	Wizard         WireWizard   `json:"wizard"`
	Options        []WireOption `json:"options"`
}

// WireCustomer is the requesting party as the remote schema shapes it.
type WireCustomer struct {
	Name          string      `json:"name"`
	ContactPerson WireContact `json:"contactPerson"`
	Address       WireAddress `json:"address"`
}

// WireContact is the customer's contact person.
type WireContact struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// WireAddress is a city/country pair.
type WireAddress struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// WireShipment describes the route and cargo. ContainerCount and
// ContainerTypes are derived echoes of Containers kept for the remote
// service's summaries.
type WireShipment struct {
	Mode           string          `json:"mode,omitempty"`
	Commodity      string          `json:"commodity,omitempty"`
	Incoterm       string          `json:"incoterm,omitempty"`
	ContainerCount int             `json:"containerCount"`
	ContainerTypes []string        `json:"containerTypes,omitempty"`
	Containers     []WireContainer `json:"containers,omitempty"`
	Origin         WirePlace       `json:"origin"`
	Destination    WirePlace       `json:"destination"`
}

// WirePlace is a location/country pair on the route.
type WirePlace struct {
	Location string `json:"location,omitempty"`
	Country  string `json:"country,omitempty"`
}

// WireContainer is one container line.
type WireContainer struct {
	Type     string  `json:"type"`
	Quantity int     `json:"quantity"`
	TEU      float64 `json:"teu,omitempty"`
}

// WireWizard carries the step 2 and 4-6 selections plus free-form notes.
type WireWizard struct {
	Notes            string              `json:"notes,omitempty"`
	SelectedServices []WireServiceChoice `json:"selectedServices,omitempty"`
	Seafreights      []WireSeafreight    `json:"seafreights,omitempty"`
	Haulages         []WireHaulage       `json:"haulages,omitempty"`
	Services         []WireMiscService   `json:"services,omitempty"`
}

// WireServiceChoice references one forwarding service chosen in step 2.
type WireServiceChoice struct {
	ServiceID string `json:"serviceId"`
	Label     string `json:"label,omitempty"`
}

// WireSeafreight is one sea-freight selection.
type WireSeafreight struct {
	ID            string          `json:"id"`
	Carrier       string          `json:"carrier,omitempty"`
	ContainerType string          `json:"containerType,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Currency      string          `json:"currency,omitempty"`
	Surcharges    []WireSurcharge `json:"surcharges,omitempty"`
}

// WireSurcharge is a named amount on a sea-freight selection.
type WireSurcharge struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// WireHaulage is the haulage selection with the haulier's precomputed price.
type WireHaulage struct {
	HaulierID   string          `json:"haulierId,omitempty"`
	HaulierName string          `json:"haulierName,omitempty"`
	OfferID     string          `json:"offerId,omitempty"`
	PickupCity  string          `json:"pickupCity,omitempty"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency,omitempty"`
}

// WireMiscService is one ancillary service selection.
type WireMiscService struct {
	ID         string          `json:"id"`
	Supplier   string          `json:"supplier,omitempty"`
	Service    string          `json:"service,omitempty"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Price      decimal.Decimal `json:"price"`
	RawPrice   string          `json:"rawPrice,omitempty"`
}

// WireOption is a saved option as the remote schema shapes it.
type WireOption struct {
	OptionID    string          `json:"optionId"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	MarginType  string          `json:"marginType,omitempty"`
	MarginValue decimal.Decimal `json:"marginValue"`
	Containers  []string        `json:"containers,omitempty"`
	Totals      WireTotals      `json:"totals"`
	CreatedBy   string          `json:"createdBy,omitempty"`
}

// WireTotals is the frozen pricing breakdown of an option.
type WireTotals struct {
	HaulageTotal    decimal.Decimal `json:"haulageTotal"`
	SeaFreightTotal decimal.Decimal `json:"seaFreightTotal"`
	MiscTotal       decimal.Decimal `json:"miscTotal"`
	SubTotal        decimal.Decimal `json:"subTotal"`
	MarginAmount    decimal.Decimal `json:"marginAmount"`
	FinalTotal      decimal.Decimal `json:"finalTotal"`
	Currency        string          `json:"currency,omitempty"`
}
