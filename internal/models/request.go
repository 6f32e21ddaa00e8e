package models

import "time"

// Warranty modes.
const (
	WarrantyCreditCard = "credit_card"
	WarrantyDebitCard  = "debit_card"
)

// SearchCriteria is the validated input of one availability search.
// Immutable once Validate has passed.
type SearchCriteria struct {
	PickupZoneID   int    `json:"pickup_zone_id"`
	DropoffZoneID  int    `json:"dropoff_zone_id"`
	PickupDate     string `json:"pickup_date"`
	PickupTime     string `json:"pickup_time"`
	DropoffDate    string `json:"dropoff_date"`
	DropoffTime    string `json:"dropoff_time"`
	CarWarranty    string `json:"car_warranty"`
	ZeroDeductible bool   `json:"zero_deductible"`
	Platinum       bool   `json:"platinum,omitempty"`

	Filters *FleetQueryFilters `json:"filters,omitempty"`
}

// FleetQueryFilters narrows the priced fleet returned to the caller. They
// never influence winner selection or pricing.
type FleetQueryFilters struct {
	Categories []string `json:"categories,omitempty"`
	Providers  []string `json:"providers,omitempty"`
	PriceMin   *float64 `json:"price_min,omitempty"`
	PriceMax   *float64 `json:"price_max,omitempty"`
}

const criteriaTimeLayout = "2006-01-02 15:04"

func (c *SearchCriteria) Validate() error {
	if c.PickupZoneID <= 0 {
		return ErrMissingPickupZone
	}
	if c.DropoffZoneID <= 0 {
		return ErrMissingDropoffZone
	}
	if c.PickupDate == "" || c.PickupTime == "" {
		return ErrMissingPickupDate
	}
	if c.DropoffDate == "" || c.DropoffTime == "" {
		return ErrMissingDropoffDate
	}
	if c.CarWarranty == "" {
		c.CarWarranty = WarrantyCreditCard
	}
	if c.CarWarranty != WarrantyCreditCard && c.CarWarranty != WarrantyDebitCard {
		return ErrInvalidWarranty
	}
	return nil
}

// PickupAt parses the pickup date and time in the given timezone.
func (c *SearchCriteria) PickupAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(criteriaTimeLayout, c.PickupDate+" "+c.PickupTime, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return t, nil
}

// DropoffAt parses the dropoff date and time in the given timezone.
func (c *SearchCriteria) DropoffAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(criteriaTimeLayout, c.DropoffDate+" "+c.DropoffTime, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return t, nil
}

// OneWay reports whether pickup and dropoff zones differ.
func (c *SearchCriteria) OneWay() bool {
	return c.PickupZoneID != c.DropoffZoneID
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingPickupZone  ValidationError = "pickup_zone_id is required"
	ErrMissingDropoffZone ValidationError = "dropoff_zone_id is required"
	ErrMissingPickupDate  ValidationError = "pickup_date and pickup_time are required"
	ErrMissingDropoffDate ValidationError = "dropoff_date and dropoff_time are required"
	ErrInvalidWarranty    ValidationError = "car_warranty must be credit_card or debit_card"
	ErrInvalidDateTime    ValidationError = "dates must be yyyy-mm-dd and times hh:mm"
	ErrDropoffNotAfter    ValidationError = "dropoff must be after pickup"
)

// DomainError is a fatal pre-dispatch condition, such as a zone that does
// not resolve to any destination.
type DomainError string

func (e DomainError) Error() string {
	return string(e)
}

const (
	ErrDestinationNotFound DomainError = "no destination found for the requested zones"
)
