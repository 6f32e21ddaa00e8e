package models

// Coverage roles assigned by the location resolver.
const (
	RolePickup  = "pickup"
	RoleDropoff = "dropoff"
)

// Destination is the city-level record a zone resolves to.
type Destination struct {
	ZoneID          int     `json:"zoneId"`
	Zone            string  `json:"zone"`
	CityName        string  `json:"cityName"`
	CountryName     string  `json:"countryName"`
	DefaultCurrency string  `json:"defaultCurrency"`
	ExchangeRate    float64 `json:"exchangeRate"`
	DestinationID   int     `json:"destinationId"`
	DestinationCode string  `json:"destinationCode"`
}

// OfficeCoverage is one active office of one provider inside a zone.
// Role is empty until the resolver labels the row for a concrete search.
type OfficeCoverage struct {
	ProviderID    int
	ProviderName  string
	OfficeID      int
	DestinationID int
	ZoneID        int
	HasAPI        bool
	OneWay        bool
	Role          string
}

// ProviderLocation maps a broker office id to the supplier's own location
// code, used when calling a live-API provider.
type ProviderLocation struct {
	OfficeID int
	Code     string
}
