package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/energyzero/energyzero-go/pkg/common"
	"github.com/energyzero/energyzero-go/pkg/log"
	"github.com/energyzero/energyzero-go/pkg/period"
	"github.com/energyzero/energyzero-go/pkg/prices"
	"github.com/energyzero/energyzero-go/pkg/types"
)

const defaultGraphQLBaseURL = "https://api.energyzero.nl/v1"

const marketPricesQuery = `
    query EnergyMarketPrices($input: EnergyMarketPricesInput!) {
    energyMarketPrices(input: $input) {
        averageExcl
        averageIncl
        prices {
        energyPriceExcl
        energyPriceIncl
        from
        isAverage
        till
        type
        vat
        additionalCosts {
            name
            priceExcl
            priceIncl
        }
        }
    }
    }
    `

const marketPricesGasQuery = `
    query EnergyMarketPricesGas($input: EnergyMarketPricesInput!) {
    energyMarketPrices(input: $input) {
        averageExcl
        averageIncl
        prices {
        energyPriceExcl
        energyPriceIncl
        from
        isAverage
        till
        type
        vat
        additionalCosts {
            name
            priceExcl
            priceIncl
        }
        }
    }
    }
    `

// GraphQLClient speaks the query-based graph protocol. It supports
// multi-day requests but a single interval per product: hourly for
// electricity, daily for gas.
type GraphQLClient struct {
	baseURL string
	client  *http.Client
	calc    *period.Calculator
}

// NewGraphQLClient returns a GraphQLClient against the production endpoint.
func NewGraphQLClient() *GraphQLClient {
	return &GraphQLClient{
		baseURL: defaultGraphQLBaseURL,
		client:  common.HTTPClient(defaultTimeout),
		calc:    period.New(),
	}
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   *prices.MarketPayload `json:"data"`
	Errors []graphQLError        `json:"errors"`
}

func (c *GraphQLClient) query(ctx context.Context, gqlReq graphQLRequest) (prices.MarketPayload, error) {
	var payload prices.MarketPayload

	body, err := json.Marshal(gqlReq)
	if err != nil {
		return payload, fmt.Errorf("failed to encode query: %w", err)
	}

	u := c.baseURL + "/gql"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return payload, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	log.Ctx(ctx).DebugContext(
		ctx,
		"querying market prices",
		slog.String("url", u),
		slog.String("operation", gqlReq.OperationName),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return payload, &types.ConnectionError{
			Message: "error occurred while communicating with the API",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
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
			Detail:      truncateBody(respBody),
		}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return payload, &types.FormatError{
			Message: "failed to decode response",
			Detail:  truncateBody(respBody),
			Err:     err,
		}
	}
	// A 200 can still carry an application error list.
	if len(gqlResp.Errors) > 0 {
		messages := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			messages[i] = e.Message
		}
		return payload, &types.ConnectionError{
			Message:    "the API returned error(s): " + strings.Join(messages, ", "),
			StatusCode: resp.StatusCode,
			Payload:    gqlResp.Errors,
		}
	}
	if gqlResp.Data == nil {
		return payload, &types.NoDataError{Message: "no prices found for this period"}
	}
	return *gqlResp.Data, nil
}

// ElectricityPrices fetches hourly electricity prices for the local
// date range. endDate is required; interval is accepted for interface
// symmetry but the graph backend only serves hourly data.
func (c *GraphQLClient) ElectricityPrices(ctx context.Context, startDate, endDate time.Time, interval types.Interval, priceType types.PriceType) (*prices.EnergyPrices, error) {
	_ = interval
	if endDate.IsZero() {
		return nil, fmt.Errorf("end date is required when using the graph backend")
	}

	w := c.calc.Electricity(startDate, endDate)
	payload, err := c.query(ctx, graphQLRequest{
		Query: marketPricesQuery,
		Variables: map[string]any{
			"input": map[string]any{
				"from":         formatInstant(w.From),
				"till":         formatInstant(w.Till),
				"intervalType": "Hourly",
				"type":         "Electricity",
			},
		},
		OperationName: "EnergyMarketPrices",
	})
	if err != nil {
		return nil, err
	}

	series, err := prices.FromMarket(payload, priceType)
	if err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, &types.NoDataError{Message: "no electricity prices found for this period"}
	}
	return series, nil
}

// GasPrices fetches daily gas prices for the local date range, requesting a
// one-day margin on both sides so the returned gas days are complete.
// endDate is required.
func (c *GraphQLClient) GasPrices(ctx context.Context, startDate, endDate time.Time, priceType types.PriceType) (*prices.EnergyPrices, error) {
	if endDate.IsZero() {
		return nil, fmt.Errorf("end date is required when using the graph backend")
	}

	w := c.calc.GasSpan(startDate, endDate)
	payload, err := c.query(ctx, graphQLRequest{
		Query: marketPricesGasQuery,
		Variables: map[string]any{
			"input": map[string]any{
				"from":         formatInstant(w.From),
				"till":         formatInstant(w.Till),
				"intervalType": "Daily",
				"type":         "Gas",
			},
		},
		OperationName: "EnergyMarketPricesGas",
	})
	if err != nil {
		return nil, err
	}

	series, err := prices.FromMarket(payload, priceType)
	if err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, &types.NoDataError{Message: "no gas prices found for this period"}
	}
	return series, nil
}
