// README: Pricing estimate tests (rate table, rounding, routing failures).
package pricing

import (
	"context"
	"errors"
	"math"
	"testing"

	"droptaxi/internal/types"
)

// stubRouter is a test double for the routing collaborator.
type stubRouter struct {
	meters  int64
	seconds int64
	err     error
}

func (s *stubRouter) GetDistance(_ context.Context, _, _ types.Point) (int64, int64, error) {
	return s.meters, s.seconds, s.err
}

func TestCostForDistance_RateTable(t *testing.T) {
	catalog := DefaultCatalog()
	cases := []struct {
		vehicle string
		trip    TripType
		km      float64
		want    int64
	}{
		{"sedan", TripOneWay, 120, 1680},
		{"sedan", TripRoundTrip, 120, 1560},
		{"etios", TripOneWay, 120, 1680},
		{"suv", TripOneWay, 120, 2280},
		{"suv", TripRoundTrip, 120, 2160},
		{"innova", TripOneWay, 120, 2400},
		{"innova", TripRoundTrip, 120, 2160},
		{"innovacrysta", TripOneWay, 120, 3000},
		{"innovacrysta", TripRoundTrip, 120, 2760},
		// rounding: 10.55km * 14 = 147.7 -> 148
		{"sedan", TripOneWay, 10.55, 148},
		{"sedan", TripOneWay, 0, 0},
	}
	for _, tc := range cases {
		v, ok := catalog.Lookup(tc.vehicle)
		if !ok {
			t.Fatalf("vehicle %q missing from catalog", tc.vehicle)
		}
		got := CostForDistance(tc.km, v, tc.trip)
		if got != tc.want {
			t.Errorf("CostForDistance(%v, %s, %s) = %d, want %d", tc.km, tc.vehicle, tc.trip, got, tc.want)
		}
	}
}

func TestEstimate_Success(t *testing.T) {
	svc := NewService(DefaultCatalog(), &stubRouter{meters: 120_000, seconds: 7_530})
	origin := &types.Point{Lat: 13.0827, Lng: 80.2707}
	dest := &types.Point{Lat: 9.9252, Lng: 78.1198}

	est, err := svc.Estimate(context.Background(), origin, dest, "sedan", TripOneWay)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.DistanceKm != 120 {
		t.Errorf("DistanceKm = %v, want 120", est.DistanceKm)
	}
	if est.DurationMin != 126 { // 7530s / 60 = 125.5 -> 126
		t.Errorf("DurationMin = %d, want 126", est.DurationMin)
	}
	if est.Cost != 1680 {
		t.Errorf("Cost = %d, want 1680", est.Cost)
	}
	if est.RatePerKm != 14 {
		t.Errorf("RatePerKm = %d, want 14", est.RatePerKm)
	}
	if est.Fare.Currency != "INR" || est.Fare.Amount != 1680 {
		t.Errorf("Fare = %+v, want 1680 INR", est.Fare)
	}
}

func TestEstimate_DistanceRoundedToTwoDecimals(t *testing.T) {
	svc := NewService(DefaultCatalog(), &stubRouter{meters: 12_345, seconds: 600})
	est, err := svc.Estimate(context.Background(), &types.Point{}, &types.Point{Lat: 1}, "sedan", TripOneWay)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.DistanceKm != 12.35 {
		t.Errorf("DistanceKm = %v, want 12.35", est.DistanceKm)
	}
	// Cost uses the unrounded distance: round(12.345 * 14) = 173.
	if want := int64(math.Round(12.345 * 14)); est.Cost != want {
		t.Errorf("Cost = %d, want %d", est.Cost, want)
	}
}

func TestEstimate_MinimumKmAdvisoryOnly(t *testing.T) {
	// 12km is far below the 150km displayed minimum; the fare must still be
	// priced on raw distance.
	svc := NewService(DefaultCatalog(), &stubRouter{meters: 12_000, seconds: 900})
	est, err := svc.Estimate(context.Background(), &types.Point{}, &types.Point{Lat: 1}, "sedan", TripOneWay)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Cost != 168 {
		t.Errorf("Cost = %d, want 168 (floor must not be applied)", est.Cost)
	}
	if est.MinimumKm != 150 {
		t.Errorf("MinimumKm = %d, want 150 echoed for display", est.MinimumKm)
	}
}

func TestEstimate_InvalidVehicleType(t *testing.T) {
	svc := NewService(DefaultCatalog(), &stubRouter{meters: 1000, seconds: 60})
	_, err := svc.Estimate(context.Background(), &types.Point{}, &types.Point{Lat: 1}, "rickshaw", TripOneWay)
	if !errors.Is(err, ErrInvalidVehicleType) {
		t.Errorf("err = %v, want ErrInvalidVehicleType", err)
	}
}

func TestEstimate_MissingPlace(t *testing.T) {
	svc := NewService(DefaultCatalog(), &stubRouter{meters: 1000, seconds: 60})
	_, err := svc.Estimate(context.Background(), nil, &types.Point{Lat: 1}, "sedan", TripOneWay)
	if !errors.Is(err, ErrNotComputable) {
		t.Errorf("err = %v, want ErrNotComputable", err)
	}
}

func TestEstimate_RoutingFailure(t *testing.T) {
	svc := NewService(DefaultCatalog(), &stubRouter{err: errors.New("ZERO_RESULTS")})
	_, err := svc.Estimate(context.Background(), &types.Point{}, &types.Point{Lat: 1}, "sedan", TripOneWay)
	if !errors.Is(err, ErrRoutingUnavailable) {
		t.Errorf("err = %v, want ErrRoutingUnavailable", err)
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	if _, err := LoadCatalog("does-not-exist.json"); err == nil {
		t.Error("expected error for missing rates file")
	}
}
