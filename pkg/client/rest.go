package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/energyzero/energyzero-go/pkg/common"
	"github.com/energyzero/energyzero-go/pkg/log"
	"github.com/energyzero/energyzero-go/pkg/prices"
	"github.com/energyzero/energyzero-go/pkg/types"
)

const defaultRESTBaseURL = "https://public.api.energyzero.nl"

// RESTClient speaks the public lookup protocol: one GET per local calendar
// day, returning every price flavor as its own stream.
type RESTClient struct {
	baseURL string
	client  *http.Client

	// location is the local zone used to trim the response to the requested
	// calendar date; nil means the system zone.
	location *time.Location
}

// NewRESTClient returns a RESTClient against the production endpoint.
func NewRESTClient() *RESTClient {
	return &RESTClient{
		baseURL: defaultRESTBaseURL,
		client:  common.HTTPClient(defaultTimeout),
	}
}

func (c *RESTClient) request(ctx context.Context, params url.Values) (prices.StreamsPayload, error) {
	var payload prices.StreamsPayload

	u := c.baseURL + "/public/v1/prices?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return payload, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
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

	// The error body is JSON when the API reports a structured failure, so
	// decode it best-effort for diagnostics.
	var errPayload any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &errPayload); err != nil {
			errPayload = nil
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		return payload, &types.NoDataError{
			Message:    "no prices found for this period",
			StatusCode: resp.StatusCode,
			Payload:    errPayload,
		}
	}
	if resp.StatusCode >= 400 {
		return payload, &types.ConnectionError{
			Message:    "unexpected response from the API",
			StatusCode: resp.StatusCode,
			Payload:    errPayload,
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

// ElectricityPrices fetches electricity prices for a single local calendar
// day at the given granularity. A non-zero endDate must match startDate.
func (c *RESTClient) ElectricityPrices(ctx context.Context, startDate, endDate time.Time, interval types.Interval, priceType types.PriceType) (*prices.EnergyPrices, error) {
	if err := checkSingleDay(startDate, endDate); err != nil {
		return nil, err
	}
	if interval == "" {
		interval = types.IntervalQuarter
	}

	params := url.Values{}
	params.Set("energyType", "ENERGY_TYPE_ELECTRICITY")
	params.Set("date", startDate.Format("02-01-2006"))
	params.Set("interval", string(interval))

	payload, err := c.request(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(payload.Base) == 0 {
		return nil, &types.NoDataError{Message: "no electricity prices found for this period"}
	}

	series, err := prices.FromStreams(payload, priceType, &prices.DayFilter{
		Day:      startDate,
		Location: c.location,
	})
	if err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, &types.NoDataError{
			Message: fmt.Sprintf("no electricity prices found for %s", startDate.Format("2006-01-02")),
		}
	}
	return series, nil
}

// GasPrices fetches gas prices for a single local calendar day. Gas is
// published per day, so the granularity is fixed.
func (c *RESTClient) GasPrices(ctx context.Context, startDate, endDate time.Time, priceType types.PriceType) (*prices.EnergyPrices, error) {
	if err := checkSingleDay(startDate, endDate); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("energyType", "ENERGY_TYPE_GAS")
	params.Set("date", startDate.Format("02-01-2006"))
	params.Set("interval", string(types.IntervalDay))

	payload, err := c.request(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(payload.Base) == 0 {
		return nil, &types.NoDataError{Message: "no gas prices found for this period"}
	}

	series, err := prices.FromStreams(payload, priceType, &prices.DayFilter{
		Day:      startDate,
		Location: c.location,
	})
	if err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, &types.NoDataError{
			Message: fmt.Sprintf("no gas prices found for %s", startDate.Format("2006-01-02")),
		}
	}
	return series, nil
}
