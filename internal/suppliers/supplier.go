package suppliers

import (
	"context"
	"time"

	"github.com/mcrbroker/carsearch/internal/models"
)

// SearchParams is the per-provider call input. Locations carry the
// supplier's own codes for live-API providers and broker office ids
// otherwise.
type SearchParams struct {
	PickupLocation  string
	DropoffLocation string
	PickupOfficeID  int
	DropoffOfficeID int
	PickupAt        time.Time
	DropoffAt       time.Time
}

// Adapter is one supplier group's availability client. Implementations
// own the wire protocol, sessions, and retries; the dispatcher only sees
// offers or an error.
type Adapter interface {
	Name() string
	GetAvailability(ctx context.Context, params SearchParams) ([]models.Offer, error)
}

// GroupError tags an adapter failure with its group identity.
type GroupError struct {
	Group string
	Err   error
}

func (e *GroupError) Error() string {
	return e.Group + ": " + e.Err.Error()
}

func (e *GroupError) Unwrap() error {
	return e.Err
}

func NewGroupError(group string, err error) *GroupError {
	return &GroupError{Group: group, Err: err}
}
