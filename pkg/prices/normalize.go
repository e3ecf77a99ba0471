package prices

import (
	"strconv"
	"time"

	"github.com/energyzero/energyzero-go/pkg/types"
)

// Normalization converts one upstream payload shape into an EnergyPrices
// series. None of the functions here fail on empty input: an empty series is
// valid output, and upgrading it to a no-data condition is the fetch layer's
// decision, since "nothing published yet" is not a parse failure.

// FromLookup normalizes the legacy lookup shape. Each reading becomes a
// one-hour bucket starting at its reading date; the batch average comes from
// the payload.
func FromLookup(payload LookupPayload) (*EnergyPrices, error) {
	buckets := make([]Bucket, 0, len(payload.Prices))
	for _, entry := range payload.Prices {
		start, err := ParseTimestamp(entry.ReadingDate)
		if err != nil {
			return nil, err
		}
		r, err := types.NewTimeRange(start, start.Add(time.Hour))
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, Bucket{Range: r, Price: entry.Price})
	}
	return NewWithAverage(buckets, payload.Average), nil
}

// FromMarket normalizes the graph-query shape, selecting one price per
// interval according to priceType. The batch average is the mean of the
// selected prices, since the upstream averages are per-flavor, and the full
// per-interval detail is retained as blocks.
func FromMarket(payload MarketPayload, priceType types.PriceType) (*EnergyPrices, error) {
	entries := payload.EnergyMarketPrices.Prices
	buckets := make([]Bucket, 0, len(entries))
	blocks := make([]EnergyPriceBlock, 0, len(entries))
	for _, entry := range entries {
		from, err := ParseTimestamp(entry.From)
		if err != nil {
			return nil, err
		}
		till, err := ParseTimestamp(entry.Till)
		if err != nil {
			return nil, err
		}
		r, err := types.NewTimeRange(from, till)
		if err != nil {
			return nil, &types.FormatError{
				Message: "invalid price interval",
				Detail:  entry.From + " - " + entry.Till,
				Err:     err,
			}
		}
		block := EnergyPriceBlock{
			Range:           r,
			EnergyPriceExcl: entry.EnergyPriceExcl,
			EnergyPriceIncl: entry.EnergyPriceIncl,
			VAT:             entry.VAT,
			AdditionalCosts: entry.AdditionalCosts,
		}
		blocks = append(blocks, block)
		buckets = append(buckets, Bucket{Range: r, Price: block.Price(priceType)})
	}

	p := New(buckets)
	p.blocks = blocks
	return p, nil
}

// DayFilter restricts a stream to buckets whose start instant, expressed in
// Location, falls on the calendar date of Day. The lookup protocol is
// queried with margin around the local day, so the response needs trimming.
type DayFilter struct {
	Day      time.Time
	Location *time.Location
}

func (f *DayFilter) keeps(start time.Time) bool {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	y, m, d := start.In(loc).Date()
	fy, fm, fd := f.Day.Date()
	return y == fy && m == fm && d == fd
}

// FromStreams normalizes the flavor-stream shape, reading the stream that
// matches priceType. A nil filter keeps every bucket. The batch average is
// the mean of the kept prices.
func FromStreams(payload StreamsPayload, priceType types.PriceType, filter *DayFilter) (*EnergyPrices, error) {
	entries, err := payload.Stream(priceType)
	if err != nil {
		return nil, err
	}

	buckets := make([]Bucket, 0, len(entries))
	for _, entry := range entries {
		start, err := ParseTimestamp(entry.Start)
		if err != nil {
			return nil, err
		}
		end, err := ParseTimestamp(entry.End)
		if err != nil {
			return nil, err
		}
		if filter != nil && !filter.keeps(start) {
			continue
		}
		r, err := types.NewTimeRange(start, end)
		if err != nil {
			return nil, &types.FormatError{
				Message: "invalid price interval",
				Detail:  entry.Start + " - " + entry.End,
				Err:     err,
			}
		}
		value, err := strconv.ParseFloat(entry.Price.Value, 64)
		if err != nil {
			return nil, &types.FormatError{
				Message: "malformed price value",
				Detail:  entry.Price.Value,
				Err:     err,
			}
		}
		buckets = append(buckets, Bucket{Range: r, Price: value})
	}
	return New(buckets), nil
}
