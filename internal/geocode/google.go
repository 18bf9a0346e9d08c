package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/Makepad-fr/wegive/internal/model"
)

// GoogleGateway resolves addresses with the Google Maps Geocoding API.
type GoogleGateway struct {
	client  *maps.Client
	region  string
	timeout time.Duration
}

type GoogleOption func(*GoogleGateway)

// WithRegion biases results to a ccTLD region code, e.g. "sg".
func WithRegion(region string) GoogleOption {
	return func(g *GoogleGateway) { g.region = strings.ToLower(strings.TrimSpace(region)) }
}

// WithTimeout bounds each lookup. Zero leaves the request unbounded.
func WithTimeout(d time.Duration) GoogleOption {
	return func(g *GoogleGateway) { g.timeout = d }
}

func NewGoogleGateway(client *maps.Client, opts ...GoogleOption) *GoogleGateway {
	g := &GoogleGateway{client: client}
	for _, o := range opts {
		o(g)
	}
	return g
}

// NewGoogleGatewayFromKey builds the maps client. Extra client options such as
// maps.WithBaseURL are passed through.
func NewGoogleGatewayFromKey(apiKey string, clientOpts []maps.ClientOption, opts ...GoogleOption) (*GoogleGateway, error) {
	clientOpts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, clientOpts...)
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("new map client")
		return nil, err
	}
	return NewGoogleGateway(client, opts...), nil
}

func (g *GoogleGateway) Resolve(ctx context.Context, address string) (model.Coordinate, error) {
	if g == nil || g.client == nil {
		return model.Coordinate{}, ErrGatewayUnavailable
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return model.Coordinate{}, ErrNoResult
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"address": address,
	}).Info("query geocoding")

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	})
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: %s", ErrGeocodingFailed, err)
	}
	if len(results) == 0 {
		return model.Coordinate{}, ErrNoResult
	}

	loc := results[0].Geometry.Location
	return model.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}
