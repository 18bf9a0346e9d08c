package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Makepad-fr/wegive/internal/model"
)

const logPrefix = "geocode"

var (
	// ErrGeocodingFailed marks every failure to turn an address into a coordinate.
	ErrGeocodingFailed = errors.New("geocoding failed")
	// ErrGatewayUnavailable means no geocoder is configured; it is also a geocoding failure.
	ErrGatewayUnavailable = fmt.Errorf("%w: geocoder not initialized", ErrGeocodingFailed)
	ErrNoResult           = fmt.Errorf("%w: address not found", ErrGeocodingFailed)
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/Makepad-fr/wegive/internal/geocode Gateway

// Gateway resolves a free-text address to a coordinate, or fails.
type Gateway interface {
	Resolve(ctx context.Context, address string) (model.Coordinate, error)
}

// Resolve guards against a missing gateway so callers can pass a nil one.
func Resolve(ctx context.Context, g Gateway, address string) (model.Coordinate, error) {
	if g == nil {
		return model.Coordinate{}, ErrGatewayUnavailable
	}
	c, err := g.Resolve(ctx, address)
	if err != nil {
		if !errors.Is(err, ErrGeocodingFailed) {
			err = fmt.Errorf("%w: %s", ErrGeocodingFailed, err)
		}
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"address": address,
			"error":   err,
		}).Warn("resolve address")
		return model.Coordinate{}, err
	}
	return c, nil
}

// ChainGateway asks each gateway in turn and returns the first success.
type ChainGateway struct {
	gateways []Gateway
}

func NewChainGateway(gateways ...Gateway) *ChainGateway {
	var gs []Gateway
	for _, g := range gateways {
		if g != nil {
			gs = append(gs, g)
		}
	}
	return &ChainGateway{gateways: gs}
}

func (c *ChainGateway) Resolve(ctx context.Context, address string) (model.Coordinate, error) {
	if len(c.gateways) == 0 {
		return model.Coordinate{}, ErrGatewayUnavailable
	}
	reasons := make([]string, 0, len(c.gateways))
	for i, g := range c.gateways {
		loc, err := g.Resolve(ctx, address)
		if err == nil {
			return loc, nil
		}
		reasons = append(reasons, fmt.Sprintf("#%d: %s", i, err.Error()))
	}
	return model.Coordinate{}, fmt.Errorf("%w: %s", ErrGeocodingFailed, strings.Join(reasons, "; "))
}
