package suppliers

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/mcrbroker/carsearch/internal/models"
)

// flexNumber decodes a JSON number whether the supplier sends it as a
// number or a quoted string.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexNumber(v)
	return nil
}

// WireOffer is the loosely-typed shape supplier responses are decoded
// into. Suppliers mix camelCase and snake_case keys; both spellings are
// accepted and merged during normalization.
type WireOffer struct {
	ProviderID         flexNumber `json:"providerId"`
	ProviderIDSnake    flexNumber `json:"provider_id"`
	ProviderName       string     `json:"providerName"`
	ProviderNameSnake  string     `json:"provider_name"`
	VehicleCategory    string     `json:"vehicleCategory"`
	CategorySnake      string     `json:"category_name"`
	VehicleName        string     `json:"vehicleName"`
	VehicleNameSnake   string     `json:"vehicle_name"`
	VehicleID          flexNumber `json:"vehicleId"`
	VehicleIDSnake     flexNumber `json:"vehicle_id"`
	VehicleImage       string     `json:"vehicleImage"`
	VehicleImageSnake  string     `json:"vehicle_image"`
	VehicleDescription string     `json:"vehicleDescription"`
	VehicleAcriss      string     `json:"vehicleAcriss"`
	VehicleType        string     `json:"vehicleType"`
	PickupOfficeID     flexNumber `json:"pickupOfficeId"`
	DropoffOfficeID    flexNumber `json:"dropoffOfficeId"`
	TotalDays          flexNumber `json:"totalDays"`
	RentDays           flexNumber `json:"rent_days"`
	NetRate            flexNumber `json:"netRate"`
	NetRateSnake       flexNumber `json:"net_rate"`
	ZeroDedNetRate     flexNumber `json:"zeroDeductibleNetRate"`
	ZeroDedNetSnake    flexNumber `json:"zero_deductible_net_rate"`
	ZeroDedPubRate     flexNumber `json:"zeroDeductiblePublicRate"`
	ZeroDedPubSnake    flexNumber `json:"zero_deductible_public_rate"`
}

// Normalize converts a supplier response into canonical offers, dropping
// entries without a provider id.
func Normalize(wire []WireOffer) []models.Offer {
	out := make([]models.Offer, 0, len(wire))
	for _, w := range wire {
		o := models.Offer{
			ProviderID:               int(pick(w.ProviderID, w.ProviderIDSnake)),
			ProviderName:             pickStr(w.ProviderName, w.ProviderNameSnake),
			VehicleCategory:          pickStr(w.VehicleCategory, w.CategorySnake),
			VehicleName:              pickStr(w.VehicleName, w.VehicleNameSnake),
			VehicleID:                int(pick(w.VehicleID, w.VehicleIDSnake)),
			VehicleImage:             pickStr(w.VehicleImage, w.VehicleImageSnake),
			VehicleDescription:       w.VehicleDescription,
			VehicleAcriss:            w.VehicleAcriss,
			VehicleType:              w.VehicleType,
			PickupOfficeID:           int(w.PickupOfficeID),
			DropoffOfficeID:          int(w.DropoffOfficeID),
			TotalDays:                int(pick(w.TotalDays, w.RentDays)),
			NetRate:                  float64(pick(w.NetRate, w.NetRateSnake)),
			ZeroDeductibleNetRate:    float64(pick(w.ZeroDedNetRate, w.ZeroDedNetSnake)),
			ZeroDeductiblePublicRate: float64(pick(w.ZeroDedPubRate, w.ZeroDedPubSnake)),
			Source:                   models.SourceAPI,
		}
		if o.ProviderID == 0 {
			continue
		}
		out = append(out, o)
	}
	return out
}

func pick(a, b flexNumber) flexNumber {
	if a != 0 {
		return a
	}
	return b
}

func pickStr(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// DecodeWire accepts either a bare array or an {"offers": [...]} wrapper.
func DecodeWire(data []byte) ([]WireOffer, error) {
	var wrapper struct {
		Offers []WireOffer `json:"offers"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Offers != nil {
		return wrapper.Offers, nil
	}
	var list []WireOffer
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}
