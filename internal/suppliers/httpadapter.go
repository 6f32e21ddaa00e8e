package suppliers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mcrbroker/carsearch/internal/models"
)

const availabilityTimeLayout = "2006-01-02 15:04"

// HTTPAdapter is the generic availability client for supplier groups that
// expose a JSON availability endpoint. Protocol quirks beyond this shape
// (SOAP envelopes, session flows) live in dedicated adapters outside this
// module.
type HTTPAdapter struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPAdapter(name, baseURL, apiKey string, timeout time.Duration) *HTTPAdapter {
	return &HTTPAdapter{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *HTTPAdapter) Name() string {
	return a.name
}

type availabilityRequest struct {
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	PickupDatetime  string `json:"pickup_datetime"`
	DropoffDatetime string `json:"dropoff_datetime"`
	PickupOfficeID  int    `json:"pickup_office_id"`
	DropoffOfficeID int    `json:"dropoff_office_id"`
}

func (a *HTTPAdapter) GetAvailability(ctx context.Context, params SearchParams) ([]models.Offer, error) {
	body, err := json.Marshal(availabilityRequest{
		PickupLocation:  params.PickupLocation,
		DropoffLocation: params.DropoffLocation,
		PickupDatetime:  params.PickupAt.Format(availabilityTimeLayout),
		DropoffDatetime: params.DropoffAt.Format(availabilityTimeLayout),
		PickupOfficeID:  params.PickupOfficeID,
		DropoffOfficeID: params.DropoffOfficeID,
	})
	if err != nil {
		return nil, NewGroupError(a.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/availability", bytes.NewReader(body))
	if err != nil {
		return nil, NewGroupError(a.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, NewGroupError(a.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewGroupError(a.name, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewGroupError(a.name, err)
	}

	wire, err := DecodeWire(data)
	if err != nil {
		return nil, NewGroupError(a.name, err)
	}
	return Normalize(wire), nil
}
