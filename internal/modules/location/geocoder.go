// README: Address geocoding via the Google Maps API, used for the default position.
package location

import (
	"context"

	"github.com/rotisserie/eris"
	"googlemaps.github.io/maps"

	"rentalpromo/internal/modules/geo"
)

var ErrNoGeocodeResult = eris.New("location: address not found")

// MapsGeocoder turns a free-form address into coordinates.
type MapsGeocoder struct {
	client *maps.Client
	region string
}

func NewMapsGeocoder(apiKey string) (*MapsGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, eris.Wrap(err, "failed to create maps client")
	}
	return &MapsGeocoder{client: client, region: "vn"}, nil
}

func (g *MapsGeocoder) Geocode(ctx context.Context, address string) (geo.Point, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	})
	if err != nil {
		return geo.Point{}, eris.Wrap(err, "maps api error")
	}
	if len(results) == 0 {
		return geo.Point{}, ErrNoGeocodeResult
	}
	loc := results[0].Geometry.Location
	return geo.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
