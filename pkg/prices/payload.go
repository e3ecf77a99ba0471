package prices

import (
	"fmt"
	"time"

	"github.com/energyzero/energyzero-go/pkg/types"
)

// Upstream timestamps use a fixed UTC format with a literal trailing Z.
// Anything else is a format error, never silently coerced.
const timestampLayout = "2006-01-02T15:04:05Z"

// ParseTimestamp parses an upstream timestamp string into a UTC instant.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, &types.FormatError{
			Message: "malformed timestamp",
			Detail:  s,
			Err:     err,
		}
	}
	return t.UTC(), nil
}

// LookupPayload is the legacy lookup-protocol response: a flat list of
// hourly readings plus an upstream-computed batch average. The price flavor
// was chosen by request parameter, so each entry carries a single price.
type LookupPayload struct {
	Prices  []LookupEntry `json:"Prices"`
	Average float64       `json:"average"`
}

// LookupEntry is one hourly reading in a LookupPayload.
type LookupEntry struct {
	ReadingDate string  `json:"readingDate"`
	Price       float64 `json:"price"`
}

// MarketPayload is the graph-query response shape: per-interval market
// prices with both VAT flavors and additional-cost line items.
type MarketPayload struct {
	EnergyMarketPrices MarketPriceList `json:"energyMarketPrices"`
}

// MarketPriceList carries the entries and the upstream averages of a
// MarketPayload. The upstream averages are per-flavor and do not match a
// selected price type, so normalization computes its own.
type MarketPriceList struct {
	AverageExcl float64       `json:"averageExcl"`
	AverageIncl float64       `json:"averageIncl"`
	Prices      []MarketEntry `json:"prices"`
}

// MarketEntry is one price interval in a MarketPayload.
type MarketEntry struct {
	From            string           `json:"from"`
	Till            string           `json:"till"`
	EnergyPriceExcl float64          `json:"energyPriceExcl"`
	EnergyPriceIncl float64          `json:"energyPriceIncl"`
	VAT             float64          `json:"vat"`
	IsAverage       bool             `json:"isAverage"`
	Type            string           `json:"type"`
	AdditionalCosts []AdditionalCost `json:"additionalCosts"`
}

// StreamsPayload is the lookup ("REST") response shape: one entry list per
// price flavor, keyed by stream name, at sub-day granularity.
type StreamsPayload struct {
	Interval     int           `json:"interval"`
	Base         []StreamEntry `json:"base"`
	BaseWithVAT  []StreamEntry `json:"base_with_vat"`
	AllIn        []StreamEntry `json:"all_in"`
	AllInWithVAT []StreamEntry `json:"all_in_with_vat"`
}

// Stream returns the entry list for the requested price flavor.
func (p StreamsPayload) Stream(priceType types.PriceType) ([]StreamEntry, error) {
	switch priceType {
	case types.PriceTypeMarket:
		return p.Base, nil
	case types.PriceTypeMarketWithVAT:
		return p.BaseWithVAT, nil
	case types.PriceTypeAllInExclVAT:
		return p.AllIn, nil
	case types.PriceTypeAllIn:
		return p.AllInWithVAT, nil
	}
	return nil, fmt.Errorf("unknown price type: %d", int(priceType))
}

// StreamEntry is one bucket in a flavor stream.
type StreamEntry struct {
	Start string      `json:"start"`
	End   string      `json:"end"`
	Price StreamValue `json:"price"`
}

// StreamValue wraps the decimal-string price value of a StreamEntry.
type StreamValue struct {
	Value string `json:"value"`
}
