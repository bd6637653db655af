// README: Pricing service computes fare estimates from road distance.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"droptaxi/internal/types"
)

var (
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
	ErrInvalidTripType    = errors.New("invalid trip type")
	// ErrRoutingUnavailable is retryable: the caller may re-trigger the
	// estimate on the next parameter change. No partial result is cached.
	ErrRoutingUnavailable = errors.New("could not calculate distance")
	// ErrNotComputable means an input place is missing its coordinates; the
	// estimate is not yet computable rather than failed.
	ErrNotComputable = errors.New("estimate not yet computable")
)

// Router is the external routing collaborator.
type Router interface {
	GetDistance(ctx context.Context, origin, destination types.Point) (meters, seconds int64, err error)
}

// Estimate is a provisional fare. The authoritative billed amount is
// produced by the booking ledger after trip completion.
type Estimate struct {
	DistanceKm  float64     `json:"distance"`
	DurationMin int64       `json:"duration"`
	Cost        int64       `json:"cost"`
	RatePerKm   int64       `json:"ratePerKm"`
	MinimumKm   int64       `json:"minimumKm"`
	Vehicle     string      `json:"vehicleType"`
	VehicleName string      `json:"vehicleLabel"`
	Fare        types.Money `json:"-"`
}

type Service struct {
	catalog *Catalog
	router  Router
}

func NewService(catalog *Catalog, router Router) *Service {
	return &Service{catalog: catalog, router: router}
}

func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Estimate resolves road distance for (origin, destination) and prices it
// for the vehicle and trip type. Pure apart from the single routing call.
//
// The catalog's minimum-km floor is intentionally not applied: the observed
// system displays the floor but bills raw distance. The floor is echoed in
// the result so callers can display it.
func (s *Service) Estimate(ctx context.Context, origin, destination *types.Point, vehicleType string, trip TripType) (Estimate, error) {
	if origin == nil || destination == nil {
		return Estimate{}, ErrNotComputable
	}
	vehicle, ok := s.catalog.Lookup(vehicleType)
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %q", ErrInvalidVehicleType, vehicleType)
	}
	if !trip.Valid() {
		return Estimate{}, fmt.Errorf("%w: %q", ErrInvalidTripType, trip)
	}

	meters, seconds, err := s.router.GetDistance(ctx, *origin, *destination)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrRoutingUnavailable, err)
	}

	km := float64(meters) / 1000.0
	cost := CostForDistance(km, vehicle, trip)
	rate := vehicle.RatePerKm.For(trip)

	return Estimate{
		DistanceKm:  math.Round(km*100) / 100,
		DurationMin: int64(math.Round(float64(seconds) / 60.0)),
		Cost:        cost,
		RatePerKm:   rate,
		MinimumKm:   vehicle.MinimumKm.For(trip),
		Vehicle:     vehicle.Type,
		VehicleName: vehicle.Label,
		Fare:        types.Rupees(cost),
	}, nil
}

// CostForDistance prices a known distance: round(km * ratePerKm[trip]).
func CostForDistance(distanceKm float64, vehicle VehicleClass, trip TripType) int64 {
	return int64(math.Round(distanceKm * float64(vehicle.RatePerKm.For(trip))))
}
