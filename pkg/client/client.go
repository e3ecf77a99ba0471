// Package client implements the EnergyZero transport clients and the
// per-product fetch-and-normalize operations built on them.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/energyzero/energyzero-go/pkg/period"
	"github.com/energyzero/energyzero-go/pkg/prices"
	"github.com/energyzero/energyzero-go/pkg/types"
	"github.com/levenlabs/go-lflag"
)

const defaultTimeout = 10 * time.Second

// Backend identifies which upstream protocol to use.
type Backend string

const (
	BackendREST    Backend = "rest"
	BackendGraphQL Backend = "graphql"
)

// API is the contract shared by the REST and GraphQL backends. Both take a
// local calendar start date plus an optional end date (zero means
// single-day), a granularity selector, and a price flavor, and either return
// a non-empty series or fail with one of the typed errors in pkg/types.
type API interface {
	ElectricityPrices(ctx context.Context, startDate, endDate time.Time, interval types.Interval, priceType types.PriceType) (*prices.EnergyPrices, error)
	GasPrices(ctx context.Context, startDate, endDate time.Time, priceType types.PriceType) (*prices.EnergyPrices, error)
}

// EnergyZero wraps one backend behind a single entry point.
type EnergyZero struct {
	api API
}

// New returns an EnergyZero using the given backend. An empty backend means
// REST.
func New(backend Backend) (*EnergyZero, error) {
	switch backend {
	case BackendREST, "":
		return &EnergyZero{api: NewRESTClient()}, nil
	case BackendGraphQL:
		return &EnergyZero{api: NewGraphQLClient()}, nil
	}
	return nil, fmt.Errorf("unknown api backend: %s", backend)
}

// NewWithAPI returns an EnergyZero over a caller-supplied backend. This is
// primarily used for testing.
func NewWithAPI(api API) *EnergyZero {
	return &EnergyZero{api: api}
}

// ElectricityPrices fetches and normalizes electricity prices for the given
// local date(s).
func (e *EnergyZero) ElectricityPrices(ctx context.Context, startDate, endDate time.Time, interval types.Interval, priceType types.PriceType) (*prices.EnergyPrices, error) {
	return e.api.ElectricityPrices(ctx, startDate, endDate, interval, priceType)
}

// GasPrices fetches and normalizes gas prices for the given local date(s).
func (e *EnergyZero) GasPrices(ctx context.Context, startDate, endDate time.Time, priceType types.PriceType) (*prices.EnergyPrices, error) {
	return e.api.GasPrices(ctx, startDate, endDate, priceType)
}

// Configured registers flags for the client and returns an EnergyZero that
// is usable once lflag.Configure has run.
func Configured() *EnergyZero {
	ez := &EnergyZero{}
	backend := lflag.String("energyzero-backend", string(BackendREST), "API backend to use (rest or graphql)")
	restURL := lflag.String("energyzero-rest-url", defaultRESTBaseURL, "base URL for the public lookup API")
	gqlURL := lflag.String("energyzero-graphql-url", defaultGraphQLBaseURL, "base URL for the graph API")
	cutover := lflag.Int("energyzero-gas-cutover-hour", period.DefaultGasCutoverHour, "local hour at which a gas day begins")

	lflag.Do(func() {
		switch Backend(*backend) {
		case BackendGraphQL:
			c := NewGraphQLClient()
			c.baseURL = *gqlURL
			c.calc.GasCutoverHour = *cutover
			ez.api = c
		default:
			c := NewRESTClient()
			c.baseURL = *restURL
			ez.api = c
		}
	})
	return ez
}

// formatInstant renders a UTC instant the way the API expects: ISO 8601
// with milliseconds and a literal Z.
func formatInstant(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// checkSingleDay enforces the REST API's single-day contract. A zero end
// date means single-day implicitly.
func checkSingleDay(startDate, endDate time.Time) error {
	if endDate.IsZero() {
		return nil
	}
	sy, sm, sd := startDate.Date()
	ey, em, ed := endDate.Date()
	if sy != ey || sm != em || sd != ed {
		return fmt.Errorf("the REST API supports single-day requests, use identical dates")
	}
	return nil
}

// truncateBody limits a response fragment carried on an error for
// diagnostics.
func truncateBody(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
