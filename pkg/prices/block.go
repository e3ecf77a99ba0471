package prices

import "github.com/energyzero/energyzero-go/pkg/types"

// AdditionalCost is one cost line item on top of the market price, e.g. a
// transmission fee or energy tax.
type AdditionalCost struct {
	Name      string  `json:"name"`
	PriceExcl float64 `json:"priceExcl"`
	PriceIncl float64 `json:"priceIncl"`
}

// EnergyPriceBlock is the full per-bucket detail from the graph-query shape.
// It is retained on the series for audit and debugging; the analytics only
// see the single selected price per bucket.
type EnergyPriceBlock struct {
	Range           types.TimeRange
	EnergyPriceExcl float64
	EnergyPriceIncl float64
	VAT             float64
	AdditionalCosts []AdditionalCost
}

// TotalExcl returns the market price excluding VAT plus every additional
// cost excluding VAT.
func (b EnergyPriceBlock) TotalExcl() float64 {
	total := b.EnergyPriceExcl
	for _, c := range b.AdditionalCosts {
		total += c.PriceExcl
	}
	return total
}

// TotalIncl returns the market price including VAT plus every additional
// cost including VAT.
func (b EnergyPriceBlock) TotalIncl() float64 {
	total := b.EnergyPriceIncl
	for _, c := range b.AdditionalCosts {
		total += c.PriceIncl
	}
	return total
}

// Price returns the block's price under the given flavor.
func (b EnergyPriceBlock) Price(priceType types.PriceType) float64 {
	switch priceType {
	case types.PriceTypeMarket:
		return b.EnergyPriceExcl
	case types.PriceTypeMarketWithVAT:
		return b.EnergyPriceIncl
	case types.PriceTypeAllInExclVAT:
		return b.TotalExcl()
	default:
		return b.TotalIncl()
	}
}
