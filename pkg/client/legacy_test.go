package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/energyzero/energyzero-go/pkg/period"
	"github.com/energyzero/energyzero-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLegacyClient(t *testing.T, now time.Time, handler http.HandlerFunc) *LegacyClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return &LegacyClient{
		baseURL: ts.URL,
		client:  ts.Client(),
		calc: &period.Calculator{
			Location:       amsterdam(t),
			GasCutoverHour: period.DefaultGasCutoverHour,
			Now:            func() time.Time { return now },
		},
		vat: types.VATInclude,
	}
}

const lookupBody = `{
	"Prices": [
		{"readingDate": "2022-12-06T23:00:00Z", "price": 0.32},
		{"readingDate": "2022-12-07T00:00:00Z", "price": 0.30}
	],
	"average": 0.31
}`

func TestLegacyElectricityPrices(t *testing.T) {
	date := time.Date(2022, 12, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2022, 12, 7, 14, 0, 0, 0, time.UTC)

	t.Run("OK", func(t *testing.T) {
		c := newTestLegacyClient(t, now, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/energyprices", r.URL.Path)
			q := r.URL.Query()
			// local midnight-to-midnight, CET, with an inclusive till bound
			assert.Equal(t, "2022-12-06T23:00:00.000Z", q.Get("fromDate"))
			assert.Equal(t, "2022-12-07T22:59:59.999Z", q.Get("tillDate"))
			assert.Equal(t, "4", q.Get("interval"))
			assert.Equal(t, "1", q.Get("usageType"))
			assert.Equal(t, "true", q.Get("inclBtw"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(lookupBody))
		})

		series, err := c.ElectricityPrices(context.Background(), date, date, 0, "")
		require.NoError(t, err)
		require.Equal(t, 2, series.Len())
		assert.Equal(t, 0.32, series.Buckets()[0].Price)

		avg, ok := series.AveragePrice()
		require.True(t, ok)
		assert.Equal(t, 0.31, avg)
	})

	t.Run("ExplicitIntervalAndVAT", func(t *testing.T) {
		c := newTestLegacyClient(t, now, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "9", q.Get("interval"))
			assert.Equal(t, "false", q.Get("inclBtw"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(lookupBody))
		})

		_, err := c.ElectricityPrices(context.Background(), date, date, 9, types.VATExclude)
		require.NoError(t, err)
	})

	t.Run("NoPrices", func(t *testing.T) {
		c := newTestLegacyClient(t, now, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"Prices": [], "average": 0}`))
		})

		_, err := c.ElectricityPrices(context.Background(), date, date, 0, "")
		var noData *types.NoDataError
		require.ErrorAs(t, err, &noData)
	})

	t.Run("ServerError", func(t *testing.T) {
		c := newTestLegacyClient(t, now, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.ElectricityPrices(context.Background(), date, date, 0, "")
		var connErr *types.ConnectionError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, http.StatusInternalServerError, connErr.StatusCode)
	})

	t.Run("UnexpectedContentType", func(t *testing.T) {
		c := newTestLegacyClient(t, now, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>maintenance</html>"))
		})

		_, err := c.ElectricityPrices(context.Background(), date, date, 0, "")
		var formatErr *types.FormatError
		require.ErrorAs(t, err, &formatErr)
	})
}

func TestLegacyGasPrices(t *testing.T) {
	date := time.Date(2022, 12, 7, 0, 0, 0, 0, time.UTC)

	t.Run("AfterCutover", func(t *testing.T) {
		now := time.Date(2022, 12, 7, 14, 0, 0, 0, time.UTC)
		c := newTestLegacyClient(t, now, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			// gas day runs 06:00 local to 06:00 local the next day
			assert.Equal(t, "2022-12-07T05:00:00.000Z", q.Get("fromDate"))
			assert.Equal(t, "2022-12-08T04:59:59.999Z", q.Get("tillDate"))
			assert.Equal(t, "3", q.Get("usageType"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(lookupBody))
		})

		_, err := c.GasPrices(context.Background(), date, date, 0, "")
		require.NoError(t, err)
	})

	t.Run("BeforeCutover", func(t *testing.T) {
		// 04:00 UTC is 05:00 local, before the cutover, so the previous gas
		// day is requested
		now := time.Date(2022, 12, 7, 4, 0, 0, 0, time.UTC)
		c := newTestLegacyClient(t, now, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "2022-12-06T05:00:00.000Z", q.Get("fromDate"))
			assert.Equal(t, "2022-12-07T04:59:59.999Z", q.Get("tillDate"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(lookupBody))
		})

		_, err := c.GasPrices(context.Background(), date, date, 0, "")
		require.NoError(t, err)
	})

	t.Run("NoPrices", func(t *testing.T) {
		now := time.Date(2022, 12, 7, 14, 0, 0, 0, time.UTC)
		c := newTestLegacyClient(t, now, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"Prices": [], "average": 0}`))
		})

		_, err := c.GasPrices(context.Background(), date, date, 0, "")
		var noData *types.NoDataError
		require.ErrorAs(t, err, &noData)
	})
}
