package types

import "fmt"

// PriceType selects which upstream price fields and cost add-ons compose the
// reported price for each bucket.
type PriceType int

const (
	// PriceTypeAllIn is the market price including VAT plus all additional
	// cost line items including VAT. This is what a consumer actually pays
	// and is the default everywhere.
	PriceTypeAllIn PriceType = iota

	// PriceTypeAllInExclVAT is the market price excluding VAT plus all
	// additional cost line items excluding VAT.
	PriceTypeAllInExclVAT

	// PriceTypeMarket is the raw market price excluding VAT, no additional
	// costs.
	PriceTypeMarket

	// PriceTypeMarketWithVAT is the raw market price including VAT, no
	// additional costs.
	PriceTypeMarketWithVAT
)

// String implements fmt.Stringer.
func (p PriceType) String() string {
	switch p {
	case PriceTypeAllIn:
		return "all_in_with_vat"
	case PriceTypeAllInExclVAT:
		return "all_in"
	case PriceTypeMarket:
		return "base"
	case PriceTypeMarketWithVAT:
		return "base_with_vat"
	}
	return fmt.Sprintf("PriceType(%d)", int(p))
}

// Valid reports whether p is one of the defined price types.
func (p PriceType) Valid() bool {
	switch p {
	case PriceTypeAllIn, PriceTypeAllInExclVAT, PriceTypeMarket, PriceTypeMarketWithVAT:
		return true
	}
	return false
}

// Interval selects the bucket granularity for the lookup ("REST") protocol.
type Interval string

const (
	IntervalQuarter Interval = "INTERVAL_QUARTER"
	IntervalHour    Interval = "INTERVAL_HOUR"
	IntervalDay     Interval = "INTERVAL_DAY"
)

// VATOption controls VAT inclusion on the legacy protocol, where the flavor
// is a request parameter rather than a payload stream.
type VATOption string

const (
	VATInclude VATOption = "true"
	VATExclude VATOption = "false"
)
