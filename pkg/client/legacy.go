package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/energyzero/energyzero-go/pkg/common"
	"github.com/energyzero/energyzero-go/pkg/log"
	"github.com/energyzero/energyzero-go/pkg/period"
	"github.com/energyzero/energyzero-go/pkg/prices"
	"github.com/energyzero/energyzero-go/pkg/types"
)

const defaultLegacyBaseURL = "https://api.energyzero.nl/v1"

const (
	usageTypeElectricity = 1
	usageTypeGas         = 3

	defaultLookupInterval = 4
)

// LegacyClient speaks the original request/response lookup protocol, where
// VAT inclusion is a request parameter rather than a payload stream and the
// response is a flat hourly reading list.
type LegacyClient struct {
	baseURL string
	client  *http.Client
	calc    *period.Calculator

	// vat is the default VAT option applied when a call passes none.
	vat types.VATOption
}

// NewLegacyClient returns a LegacyClient against the production endpoint,
// including VAT by default.
func NewLegacyClient() *LegacyClient {
	return &LegacyClient{
		baseURL: defaultLegacyBaseURL,
		client:  common.HTTPClient(defaultTimeout),
		calc:    period.New(),
		vat:     types.VATInclude,
	}
}

func (c *LegacyClient) request(ctx context.Context, params url.Values) (prices.LookupPayload, error) {
	var payload prices.LookupPayload

	u := c.baseURL + "/energyprices?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return payload, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain")
	log.Ctx(ctx).DebugContext(ctx, "fetching prices", slog.String("url", u))

	resp, err := c.client.Do(req)
	if err != nil {
		return payload, &types.ConnectionError{
			Message: "error occurred while communicating with the API",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return payload, &types.ConnectionError{
			Message: "failed to read response body",
			Err:     err,
		}
	}
	if resp.StatusCode >= 400 {
		return payload, &types.ConnectionError{
			Message:    "unexpected response from the API",
			StatusCode: resp.StatusCode,
		}
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return payload, &types.FormatError{
			Message:     "unexpected content type response from the API",
			ContentType: ct,
			Detail:      truncateBody(body),
		}
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, &types.FormatError{
			Message: "failed to decode response",
			Detail:  truncateBody(body),
			Err:     err,
		}
	}
	return payload, nil
}

func (c *LegacyClient) fetch(ctx context.Context, w period.Window, interval, usageType int, vat types.VATOption) (*prices.EnergyPrices, error) {
	if interval == 0 {
		interval = defaultLookupInterval
	}
	if vat == "" {
		vat = c.vat
	}

	params := url.Values{}
	params.Set("fromDate", formatInstant(w.From))
	params.Set("tillDate", formatInstant(w.InclusiveTill()))
	params.Set("interval", strconv.Itoa(interval))
	params.Set("usageType", strconv.Itoa(usageType))
	params.Set("inclBtw", string(vat))

	payload, err := c.request(ctx, params)
	if err != nil {
		return nil, err
	}
	return prices.FromLookup(payload)
}

// ElectricityPrices fetches hourly electricity prices for the local date
// range, midnight to midnight. A zero interval uses the default; an empty
// vat uses the client default.
func (c *LegacyClient) ElectricityPrices(ctx context.Context, startDate, endDate time.Time, interval int, vat types.VATOption) (*prices.EnergyPrices, error) {
	series, err := c.fetch(ctx, c.calc.Electricity(startDate, endDate), interval, usageTypeElectricity, vat)
	if err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, &types.NoDataError{Message: "no energy prices found for this period"}
	}
	return series, nil
}

// GasPrices fetches gas prices for the local date range. The window follows
// the gas-day cutover: before the cutover hour the previous day's gas day
// is the active one.
func (c *LegacyClient) GasPrices(ctx context.Context, startDate, endDate time.Time, interval int, vat types.VATOption) (*prices.EnergyPrices, error) {
	series, err := c.fetch(ctx, c.calc.Gas(startDate, endDate), interval, usageTypeGas, vat)
	if err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, &types.NoDataError{Message: "no gas prices found for this period"}
	}
	return series, nil
}
