package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"droptaxi/internal/types"
)

// RouteService handles interactions with the Google Maps Distance Matrix API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// GetDistance returns road distance in meters and travel time in seconds for
// a trip from origin to destination. It assumes driving mode.
func (s *RouteService) GetDistance(ctx context.Context, origin, destination types.Point) (meters, seconds int64, err error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{latLng(origin)},
		Destinations: []string{latLng(destination)},
		Mode:         maps.TravelModeDriving,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, 0, fmt.Errorf("no route found")
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, 0, fmt.Errorf("no route found: element status %s", el.Status)
	}

	return int64(el.Distance.Meters), int64(el.Duration.Seconds()), nil
}

func latLng(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
