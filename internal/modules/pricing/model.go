// README: Vehicle class catalog and per-km rate tiers.
package pricing

import (
	"encoding/json"
	"fmt"
	"os"
)

type TripType string

const (
	TripOneWay    TripType = "oneway"
	TripRoundTrip TripType = "roundtrip"
)

func (t TripType) Valid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

// TierRates holds a per-trip-type value pair (rate or minimum km).
type TierRates struct {
	OneWay    int64 `json:"oneway"`
	RoundTrip int64 `json:"roundtrip"`
}

func (r TierRates) For(t TripType) int64 {
	if t == TripRoundTrip {
		return r.RoundTrip
	}
	return r.OneWay
}

// VehicleClass is one entry of the fare catalog.
type VehicleClass struct {
	Type      string    `json:"type"`
	Label     string    `json:"label"`
	RatePerKm TierRates `json:"ratePerKm"`
	// MinimumKm is advisory: it is shown to customers alongside the rate but
	// is not applied when computing the estimate.
	MinimumKm TierRates `json:"minimumKm"`
}

// Catalog is the static fare configuration, loaded once at process start
// into an immutable value. Pricing changes ship as a new catalog version,
// not a rebuild.
type Catalog struct {
	Version  string         `json:"version"`
	Vehicles []VehicleClass `json:"vehicles"`

	byType map[string]VehicleClass
}

// NewCatalog indexes the vehicle list for lookup.
func NewCatalog(version string, vehicles []VehicleClass) *Catalog {
	c := &Catalog{Version: version, Vehicles: vehicles, byType: make(map[string]VehicleClass, len(vehicles))}
	for _, v := range vehicles {
		c.byType[v.Type] = v
	}
	return c
}

// DefaultCatalog returns the built-in five-vehicle rate table.
func DefaultCatalog() *Catalog {
	return NewCatalog("builtin-1", []VehicleClass{
		{Type: "sedan", Label: "Sedan (4+1)", RatePerKm: TierRates{OneWay: 14, RoundTrip: 13}, MinimumKm: TierRates{OneWay: 150, RoundTrip: 250}},
		{Type: "etios", Label: "Etios (4+1)", RatePerKm: TierRates{OneWay: 14, RoundTrip: 13}, MinimumKm: TierRates{OneWay: 150, RoundTrip: 250}},
		{Type: "suv", Label: "SUV (6+1)", RatePerKm: TierRates{OneWay: 19, RoundTrip: 18}, MinimumKm: TierRates{OneWay: 150, RoundTrip: 250}},
		{Type: "innova", Label: "Innova (7+1)", RatePerKm: TierRates{OneWay: 20, RoundTrip: 18}, MinimumKm: TierRates{OneWay: 150, RoundTrip: 250}},
		{Type: "innovacrysta", Label: "Innova Crysta (7+1)", RatePerKm: TierRates{OneWay: 25, RoundTrip: 23}, MinimumKm: TierRates{OneWay: 150, RoundTrip: 250}},
	})
}

// LoadCatalog reads a catalog from a JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates file: %w", err)
	}
	var raw Catalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing rates file %s: %w", path, err)
	}
	if len(raw.Vehicles) == 0 {
		return nil, fmt.Errorf("rates file %s defines no vehicles", path)
	}
	return NewCatalog(raw.Version, raw.Vehicles), nil
}

// Lookup returns the vehicle class for a type, or false when the type is not
// in the catalog.
func (c *Catalog) Lookup(vehicleType string) (VehicleClass, bool) {
	v, ok := c.byType[vehicleType]
	return v, ok
}

// Label returns the display label for a vehicle type, falling back to the
// raw type for unknown values.
func (c *Catalog) Label(vehicleType string) string {
	if v, ok := c.byType[vehicleType]; ok {
		return v.Label
	}
	return vehicleType
}
