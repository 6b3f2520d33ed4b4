package models

// Vendor is a supplier the company buys from.
type Vendor struct {
	VendorID        string   `json:"vendor_id"`       // "V" followed by 7 digits, unique per run
	Name            string   `json:"name"`            // Company name
	Description     string   `json:"description"`     // Generated business description
	Address         string   `json:"address"`         // Postal address
	TaxID           string   `json:"tax_id"`          // Tax identification number
	PaymentTerms    string   `json:"payment_terms"`   // e.g. "Net 30", "2% 10 Net 30"
	Regions         []string `json:"regions"`         // Regions the vendor delivers to
	Specializations []string `json:"specializations"` // Item categories the vendor sells
	Rating          float64  `json:"rating"`          // 1.0 - 5.0, one decimal
	IsPreferred     bool     `json:"is_preferred"`
	Contact         Contact  `json:"contact"`
}

// Contact is the vendor's point of contact.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ServesRegion reports whether the vendor delivers to region.
func (v *Vendor) ServesRegion(region string) bool {
	for _, r := range v.Regions {
		if r == region {
			return true
		}
	}
	return false
}
