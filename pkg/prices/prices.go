// Package prices holds the unified price-series abstraction and the
// normalization functions that build it from the upstream wire shapes.
package prices

import (
	"math"
	"slices"
	"time"

	"github.com/energyzero/energyzero-go/pkg/types"
)

// Bucket is one (time range, price) pair within a series. A price of exactly
// 0 is a valid price; "no price" is the absence of a bucket.
type Bucket struct {
	Range types.TimeRange
	Price float64
}

// EnergyPrices is a batch of time-bucketed prices for a single request.
// Buckets keep upstream order (ascending in practice, but not resorted
// here). The value is immutable after construction and every analytics
// method is a pure function of the buckets, recomputed per call.
type EnergyPrices struct {
	// Now returns the current instant for "as of now" lookups. Leave nil to
	// use time.Now; tests override it.
	Now func() time.Time

	buckets    []Bucket
	blocks     []EnergyPriceBlock
	average    float64
	hasAverage bool
}

// New returns a series over the given buckets with the batch average
// computed as the arithmetic mean of the bucket prices. An empty batch has
// no average.
func New(buckets []Bucket) *EnergyPrices {
	p := &EnergyPrices{buckets: buckets}
	if len(buckets) > 0 {
		var sum float64
		for _, b := range buckets {
			sum += b.Price
		}
		p.average = sum / float64(len(buckets))
		p.hasAverage = true
	}
	return p
}

// NewWithAverage returns a series with an upstream-provided batch average
// instead of a computed one. An empty batch has no average regardless.
func NewWithAverage(buckets []Bucket, average float64) *EnergyPrices {
	p := &EnergyPrices{buckets: buckets}
	if len(buckets) > 0 {
		p.average = average
		p.hasAverage = true
	}
	return p
}

// Len returns the number of buckets.
func (p *EnergyPrices) Len() int {
	return len(p.buckets)
}

// Buckets returns a copy of the buckets in upstream order, so mutating the
// result cannot alter the series. Callers needing chronological order must
// sort by Range start themselves.
func (p *EnergyPrices) Buckets() []Bucket {
	return slices.Clone(p.buckets)
}

// Blocks returns a copy of the raw per-bucket detail retained from shapes
// that carry it. It is audit/debug data and feeds none of the analytics.
func (p *EnergyPrices) Blocks() []EnergyPriceBlock {
	return slices.Clone(p.blocks)
}

// AveragePrice returns the batch average. ok is false for an empty series.
func (p *EnergyPrices) AveragePrice() (float64, bool) {
	return p.average, p.hasAverage
}

func (p *EnergyPrices) utcNow() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

// PriceAt returns the price of the bucket containing moment. ok is false
// when no bucket contains it. A returned 0 is a real zero price.
func (p *EnergyPrices) PriceAt(moment time.Time) (float64, bool) {
	for _, b := range p.buckets {
		if b.Range.Contains(moment) {
			return b.Price, true
		}
	}
	return 0, false
}

// CurrentPrice returns the price of the bucket containing the current
// instant. ok is false when no bucket contains it.
func (p *EnergyPrices) CurrentPrice() (float64, bool) {
	return p.PriceAt(p.utcNow())
}

// ExtremePrices returns the minimum and maximum bucket price. ok is false
// for an empty series.
func (p *EnergyPrices) ExtremePrices() (minPrice, maxPrice float64, ok bool) {
	if len(p.buckets) == 0 {
		return 0, 0, false
	}
	minPrice = p.buckets[0].Price
	maxPrice = p.buckets[0].Price
	for _, b := range p.buckets[1:] {
		if b.Price < minPrice {
			minPrice = b.Price
		}
		if b.Price > maxPrice {
			maxPrice = b.Price
		}
	}
	return minPrice, maxPrice, true
}

// HighestPriceTimeRange returns the range of the first bucket, in upstream
// order, holding the maximum price. ok is false for an empty series.
func (p *EnergyPrices) HighestPriceTimeRange() (types.TimeRange, bool) {
	if len(p.buckets) == 0 {
		return types.TimeRange{}, false
	}
	best := p.buckets[0]
	for _, b := range p.buckets[1:] {
		if b.Price > best.Price {
			best = b
		}
	}
	return best.Range, true
}

// LowestPriceTimeRange returns the range of the first bucket, in upstream
// order, holding the minimum price. ok is false for an empty series.
func (p *EnergyPrices) LowestPriceTimeRange() (types.TimeRange, bool) {
	if len(p.buckets) == 0 {
		return types.TimeRange{}, false
	}
	best := p.buckets[0]
	for _, b := range p.buckets[1:] {
		if b.Price < best.Price {
			best = b
		}
	}
	return best.Range, true
}

// PctOfMaxPrice returns the current price as a percentage of the maximum
// price, rounded to two decimals. ok is false for an empty series, when no
// bucket contains the current instant, or when the maximum price is zero or
// negative: energy markets do see non-positive prices and a percentage of a
// non-positive maximum is undefined, so it is reported as absent rather
// than as NaN or infinity.
func (p *EnergyPrices) PctOfMaxPrice() (float64, bool) {
	current, ok := p.CurrentPrice()
	if !ok {
		return 0, false
	}
	_, maxPrice, ok := p.ExtremePrices()
	if !ok || maxPrice <= 0 {
		return 0, false
	}
	return math.Round(current/maxPrice*100*100) / 100, true
}

// RangesPricedEqualOrLower returns how many buckets are priced at or below
// the current price. ok is false for an empty series or when no bucket
// contains the current instant.
func (p *EnergyPrices) RangesPricedEqualOrLower() (int, bool) {
	current, ok := p.CurrentPrice()
	if !ok {
		return 0, false
	}
	var n int
	for _, b := range p.buckets {
		if b.Price <= current {
			n++
		}
	}
	return n, true
}
