package models

// Offer sources.
const (
	SourceAPI    = "api"
	SourceNonAPI = "non_api"
)

// Offer is the normalized, provider-agnostic vehicle offer produced by a
// supplier adapter or the non-API rate source. Rates are per rental day in
// the supplier's quoting currency. Downstream stages only ever copy an
// Offer; they never mutate one in place.
type Offer struct {
	ProviderID         int     `json:"providerId"`
	ProviderName       string  `json:"providerName"`
	VehicleCategory    string  `json:"vehicleCategory"`
	VehicleName        string  `json:"vehicleName"`
	VehicleID          int     `json:"vehicleId"`
	VehicleImage       string  `json:"vehicleImage"`
	VehicleDescription string  `json:"vehicleDescription,omitempty"`
	VehicleAcriss      string  `json:"vehicleAcriss,omitempty"`
	VehicleType        string  `json:"vehicleType,omitempty"`
	PickupOfficeID     int     `json:"pickupOfficeId"`
	DropoffOfficeID    int     `json:"dropoffOfficeId"`
	TotalDays          int     `json:"totalDays"`
	NetRate            float64 `json:"netRate"`
	// Zero-deductible rates are 0 unless the search requested coverage and
	// the source carries precomputed columns for it.
	ZeroDeductibleNetRate    float64 `json:"zeroDeductibleNetRate"`
	ZeroDeductiblePublicRate float64 `json:"zeroDeductiblePublicRate"`
	Source                   string  `json:"source"`
}

// HasNetRate reports whether the offer carries a usable daily net rate.
// Offers without one are discarded before winner selection.
func (o Offer) HasNetRate() bool {
	return o.NetRate > 0
}

// CatalogModel is a row of the broker's vehicle catalog: every model sold
// under a category. Used only to multiply a category winner across models.
type CatalogModel struct {
	VehicleCategory string `json:"vehicleCategory"`
	VehicleName     string `json:"vehicleName"`
	VehicleImage    string `json:"vehicleImage"`
	VehicleID       int    `json:"vehicleId"`
}

// PapRow is one row of the PAP (minimum daily margin) dataset for a
// destination and pickup date. Pap is meaningful only when Valid is true;
// the seasonal query left-joins, so categories without a configured PAP
// come back null.
type PapRow struct {
	CategoryName string
	Pap          float64
	Valid        bool
}

// DebitCondition describes a provider registered as debit-card accepting.
// An empty Categories list allows every category.
type DebitCondition struct {
	ProviderID      int
	Categories      []string
	IncrementAmount float64
	AcceptsDowntown bool
}
