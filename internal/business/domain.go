// Package business holds the issuer's own profile, a singleton record.
package business

// Info is the business profile stamped onto every invoice. It is saved
// wholesale on each update; there is no versioning.
type Info struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone,omitempty"`
	PaymentTerms string  `json:"paymentTerms"`
	LateFee      float64 `json:"lateFeePercent"`
	DefaultNotes string  `json:"defaultNotes,omitempty"`
	LogoDataURI  string  `json:"logo,omitempty"`
	BrandColor   string  `json:"brandColor,omitempty"`
	Website      string  `json:"website,omitempty"`
}
