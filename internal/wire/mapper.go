package wire

import (
	"fmt"

	"github.com/harborline/draftquote/pkg/types"
)

// Required field names reported by validation. Callers render these to the
// user, so they follow the wire schema's naming.
const (
	FieldRequestQuoteID  = "requestQuoteId"
	FieldCustomerName    = "customer.name"
	FieldOriginCity      = "shipment.origin.location"
	FieldDestinationCity = "shipment.destination.location"
)

// ShipmentMode is the only transport mode the wizard produces.
const ShipmentMode = "SEA"

// Validate checks the fields the remote store requires before any write.
// Every violation is collected so the caller gets the complete list, not
// just the first missing field.
func Validate(d *types.DraftQuote) error {
	var missing []string
	if d == nil || d.RequestQuoteID == "" {
		missing = append(missing, FieldRequestQuoteID)
	}
	if d == nil || d.Step1 == nil || d.Step1.Customer.CompanyName == "" {
		missing = append(missing, FieldCustomerName)
	}
	if d == nil || d.Step1 == nil || d.Step1.Origin.City == "" {
		missing = append(missing, FieldOriginCity)
	}
	if d == nil || d.Step1 == nil || d.Step1.Destination.City == "" {
		missing = append(missing, FieldDestinationCity)
	}
	if len(missing) > 0 {
		return &types.ValidationError{Fields: missing}
	}
	return nil
}

// ToCreateRequest maps a draft to the remote create request. Fails with a
// ValidationError listing every missing required field.
func ToCreateRequest(d *types.DraftQuote) (*WireCreate, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}

	req := &WireCreate{
		RequestQuoteID: d.RequestQuoteID,
		Customer:       mapCustomer(d.Step1),
		Shipment:       mapShipment(d),
		Wizard:         mapWizard(d),
	}
	return req, nil
}

// ToUpdateRequest maps a draft to the remote update request: the create
// payload plus saved options and notes.
func ToUpdateRequest(d *types.DraftQuote) (*WireUpdate, error) {
	create, err := ToCreateRequest(d)
	if err != nil {
		return nil, err
	}

	req := &WireUpdate{
		WireCreate: *create,
		Options:    make([]WireOption, 0, len(d.SavedOptions)),
	}
	if d.Step1 != nil {
		req.Notes = d.Step1.Comment
	}
	for _, opt := range d.SavedOptions {
		req.Options = append(req.Options, mapOption(opt, d.Step3))
	}
	return req, nil
}

// FromResponse maps a remote response back into a draft. Absent optional
// sub-objects become nil step records rather than errors; only the
// server-assigned draft id is genuinely required.
func FromResponse(r *WireResponse) (*types.DraftQuote, error) {
	if r == nil || r.DraftQuoteID == "" {
		return nil, fmt.Errorf("response draftQuoteId: %w", types.ErrMapping)
	}

	d := &types.DraftQuote{
		DraftID:        r.DraftQuoteID,
		RequestQuoteID: r.RequestQuoteID,
		SavedOptions:   []types.Option{},
	}

	d.Step1 = unmapStep1(r.Customer, r.Shipment, r.Wizard.Notes)
	d.Step2 = unmapStep2(r.Wizard.SelectedServices)
	d.Step3 = unmapStep3(r.Shipment.Containers)
	d.Step4 = unmapStep4(r.Wizard.Haulages)
	d.Step5 = unmapStep5(r.Wizard.Seafreights)
	d.Step6 = unmapStep6(r.Wizard.Services)

	for _, wo := range r.Options {
		d.SavedOptions = append(d.SavedOptions, unmapOption(wo))
	}
	return d, nil
}

func mapCustomer(s1 *types.Step1) WireCustomer {
	if s1 == nil {
		return WireCustomer{}
	}
	return WireCustomer{
		Name: s1.Customer.CompanyName,
		ContactPerson: WireContact{
			FullName: s1.Customer.ContactName,
			Email:    s1.Customer.ContactEmail,
		},
		Address: WireAddress{
			City:    s1.Customer.City,
			Country: s1.Customer.Country,
		},
	}
}

func mapShipment(d *types.DraftQuote) WireShipment {
	sh := WireShipment{Mode: ShipmentMode}
	if d.Step1 != nil {
		sh.Commodity = d.Step1.ProductName
		sh.Incoterm = d.Step1.Incoterm
		sh.Origin = WirePlace{Location: d.Step1.Origin.City, Country: d.Step1.Origin.Country}
		sh.Destination = WirePlace{Location: d.Step1.Destination.City, Country: d.Step1.Destination.Country}
	}
	if d.Step3 != nil {
		sh.ContainerCount = d.Step3.TotalQuantity()
		for _, c := range d.Step3.Containers {
			sh.ContainerTypes = append(sh.ContainerTypes, c.Type)
			sh.Containers = append(sh.Containers, WireContainer{Type: c.Type, Quantity: c.Quantity, TEU: c.TEU})
		}
	}
	return sh
}

func mapWizard(d *types.DraftQuote) WireWizard {
	w := WireWizard{}
	if d.Step1 != nil {
		w.Notes = d.Step1.Comment
	}
	if d.Step2 != nil {
		for _, svc := range d.Step2.SelectedServices {
			w.SelectedServices = append(w.SelectedServices, WireServiceChoice{ServiceID: svc.ServiceID, Label: svc.Label})
		}
	}
	if d.Step4 != nil {
		w.Haulages = append(w.Haulages, WireHaulage{
			HaulierID:   d.Step4.HaulierID,
			HaulierName: d.Step4.HaulierName,
			OfferID:     d.Step4.OfferID,
			PickupCity:  d.Step4.PickupCity,
			Subtotal:    d.Step4.Calculation.Subtotal,
			TotalAmount: d.Step4.Calculation.TotalAmount,
			Currency:    d.Step4.Calculation.Currency,
		})
	}
	if d.Step5 != nil {
		for _, sel := range d.Step5.Selections {
			sf := WireSeafreight{
				ID:            sel.ID,
				Carrier:       sel.CarrierName,
				ContainerType: sel.ContainerType,
				BasePrice:     sel.BasePrice,
				Currency:      sel.Currency,
			}
			for _, sur := range sel.Surcharges {
				sf.Surcharges = append(sf.Surcharges, WireSurcharge{Name: sur.Name, Value: sur.Value})
			}
			w.Seafreights = append(w.Seafreights, sf)
		}
	}
	if d.Step6 != nil {
		for _, sel := range d.Step6.Selections {
			w.Services = append(w.Services, WireMiscService{
				ID:         sel.ID,
				Supplier:   sel.SupplierName,
				Service:    sel.ServiceName,
				UnitPrice:  sel.Pricing.UnitPrice,
				TotalPrice: sel.Pricing.TotalPrice,
				Price:      sel.Pricing.Price,
				RawPrice:   sel.Pricing.RawPrice,
			})
		}
	}
	return w
}

func mapOption(opt types.Option, s3 *types.Step3) WireOption {
	wo := WireOption{
		OptionID:    opt.OptionID,
		Label:       opt.Name,
		Description: opt.Description,
		Currency:    opt.Totals.Currency,
		MarginType:  opt.MarginType,
		MarginValue: opt.MarginValue,
		CreatedBy:   opt.CreatedBy,
		Totals: WireTotals{
			HaulageTotal:    opt.Totals.HaulageTotal,
			SeaFreightTotal: opt.Totals.SeaFreightTotal,
			MiscTotal:       opt.Totals.MiscTotal,
			SubTotal:        opt.Totals.SubTotal,
			MarginAmount:    opt.Totals.MarginAmount,
			FinalTotal:      opt.Totals.FinalTotal,
			Currency:        opt.Totals.Currency,
		},
	}
	if s3 != nil {
		for _, c := range s3.Containers {
			wo.Containers = append(wo.Containers, c.Type)
		}
	}
	return wo
}

func unmapStep1(c WireCustomer, sh WireShipment, notes string) *types.Step1 {
	empty := c == (WireCustomer{}) &&
		sh.Origin == (WirePlace{}) && sh.Destination == (WirePlace{}) &&
		sh.Commodity == "" && sh.Incoterm == "" && notes == ""
	if empty {
		return nil
	}
	return &types.Step1{
		Customer: types.Customer{
			CompanyName:  c.Name,
			ContactName:  c.ContactPerson.FullName,
			ContactEmail: c.ContactPerson.Email,
			City:         c.Address.City,
			Country:      c.Address.Country,
		},
		Origin:      types.Location{City: sh.Origin.Location, Country: sh.Origin.Country},
		Destination: types.Location{City: sh.Destination.Location, Country: sh.Destination.Country},
		ProductName: sh.Commodity,
		Incoterm:    sh.Incoterm,
		Comment:     notes,
	}
}

func unmapStep2(choices []WireServiceChoice) *types.Step2 {
	if len(choices) == 0 {
		return nil
	}
	s := &types.Step2{}
	for _, c := range choices {
		s.SelectedServices = append(s.SelectedServices, types.ServiceSelection{ServiceID: c.ServiceID, Label: c.Label})
	}
	return s
}

func unmapStep3(containers []WireContainer) *types.Step3 {
	if len(containers) == 0 {
		return nil
	}
	s := &types.Step3{}
	for _, c := range containers {
		s.Containers = append(s.Containers, types.Container{Type: c.Type, Quantity: c.Quantity, TEU: c.TEU})
	}
	return s
}

// unmapStep4 takes the first haulage entry; the wizard only ever selects one.
func unmapStep4(haulages []WireHaulage) *types.Step4 {
	if len(haulages) == 0 {
		return nil
	}
	h := haulages[0]
	return &types.Step4{
		HaulierID:   h.HaulierID,
		HaulierName: h.HaulierName,
		OfferID:     h.OfferID,
		PickupCity:  h.PickupCity,
		Calculation: types.HaulageCalculation{
			Subtotal:    h.Subtotal,
			TotalAmount: h.TotalAmount,
			Currency:    h.Currency,
		},
	}
}

func unmapStep5(seafreights []WireSeafreight) *types.Step5 {
	if len(seafreights) == 0 {
		return nil
	}
	s := &types.Step5{}
	for _, sf := range seafreights {
		sel := types.SeaFreightSelection{
			ID:            sf.ID,
			CarrierName:   sf.Carrier,
			ContainerType: sf.ContainerType,
			BasePrice:     sf.BasePrice,
			Currency:      sf.Currency,
		}
		for _, sur := range sf.Surcharges {
			sel.Surcharges = append(sel.Surcharges, types.Surcharge{Name: sur.Name, Value: sur.Value})
		}
		s.Selections = append(s.Selections, sel)
	}
	return s
}

func unmapStep6(services []WireMiscService) *types.Step6 {
	if len(services) == 0 {
		return nil
	}
	s := &types.Step6{}
	for _, svc := range services {
		s.Selections = append(s.Selections, types.MiscSelection{
			ID:           svc.ID,
			SupplierName: svc.Supplier,
			ServiceName:  svc.Service,
			Pricing: types.ServicePricing{
				UnitPrice:  svc.UnitPrice,
				TotalPrice: svc.TotalPrice,
				Price:      svc.Price,
				RawPrice:   svc.RawPrice,
			},
		})
	}
	return s
}

func unmapOption(wo WireOption) types.Option {
	return types.Option{
		OptionID:    wo.OptionID,
		Name:        wo.Label,
		Description: wo.Description,
		MarginType:  wo.MarginType,
		MarginValue: wo.MarginValue,
		CreatedBy:   wo.CreatedBy,
		Totals: types.TotalsBreakdown{
			HaulageTotal:    wo.Totals.HaulageTotal,
			SeaFreightTotal: wo.Totals.SeaFreightTotal,
			MiscTotal:       wo.Totals.MiscTotal,
			SubTotal:        wo.Totals.SubTotal,
			MarginAmount:    wo.Totals.MarginAmount,
			FinalTotal:      wo.Totals.FinalTotal,
			Currency:        wo.Totals.Currency,
		},
	}
}
