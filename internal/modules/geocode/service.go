// README: Center-location geocoding via the Google Geocoding API.
package geocode

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Service resolves free-form location text to coordinates. It is used when a
// trip request names its center but supplies no coordinates.
type Service struct {
	client *maps.Client
}

// NewService creates a Service with the given API key.
func NewService(apiKey string) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client}, nil
}

// Resolve geocodes name (optionally refined by address) and returns the first
// match's coordinates.
func (s *Service) Resolve(ctx context.Context, name, address string) (lat, lng float64, err error) {
	query := name
	if address != "" {
		query = fmt.Sprintf("%s %s", name, address)
	}
	if strings.TrimSpace(query) == "" {
		return 0, 0, fmt.Errorf("empty location query")
	}

	r := &maps.GeocodingRequest{
		Address:  query,
		Language: "zh-CN",
	}
	results, err := s.client.Geocode(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", query)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
