package client

import (
	"context"
	"testing"
	"time"

	"github.com/energyzero/energyzero-go/pkg/prices"
	"github.com/energyzero/energyzero-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	electricityCalls int
	gasCalls         int
	series           *prices.EnergyPrices
}

func (s *stubAPI) ElectricityPrices(ctx context.Context, startDate, endDate time.Time, interval types.Interval, priceType types.PriceType) (*prices.EnergyPrices, error) {
	s.electricityCalls++
	return s.series, nil
}

func (s *stubAPI) GasPrices(ctx context.Context, startDate, endDate time.Time, priceType types.PriceType) (*prices.EnergyPrices, error) {
	s.gasCalls++
	return s.series, nil
}

func TestNew(t *testing.T) {
	ez, err := New(BackendREST)
	require.NoError(t, err)
	_, ok := ez.api.(*RESTClient)
	assert.True(t, ok)

	ez, err = New("")
	require.NoError(t, err)
	_, ok = ez.api.(*RESTClient)
	assert.True(t, ok, "empty backend defaults to REST")

	ez, err = New(BackendGraphQL)
	require.NoError(t, err)
	_, ok = ez.api.(*GraphQLClient)
	assert.True(t, ok)

	_, err = New("soap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown api backend")
}

func TestEnergyZeroDelegates(t *testing.T) {
	stub := &stubAPI{series: prices.New(nil)}
	ez := NewWithAPI(stub)
	date := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	series, err := ez.ElectricityPrices(context.Background(), date, date, types.IntervalHour, types.PriceTypeAllIn)
	require.NoError(t, err)
	assert.Same(t, stub.series, series)
	assert.Equal(t, 1, stub.electricityCalls)

	_, err = ez.GasPrices(context.Background(), date, date, types.PriceTypeAllIn)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.gasCalls)
}

func TestCheckSingleDay(t *testing.T) {
	date := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, checkSingleDay(date, time.Time{}))
	assert.NoError(t, checkSingleDay(date, date))
	// time of day is irrelevant, only the calendar date counts
	assert.NoError(t, checkSingleDay(date, date.Add(23*time.Hour)))
	assert.Error(t, checkSingleDay(date, date.AddDate(0, 0, 1)))
}

func TestFormatInstant(t *testing.T) {
	assert.Equal(
		t,
		"2022-12-06T23:00:00.000Z",
		formatInstant(time.Date(2022, 12, 6, 23, 0, 0, 0, time.UTC)),
	)

	// non-UTC instants are rendered in UTC
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	assert.Equal(
		t,
		"2022-12-06T23:00:00.000Z",
		formatInstant(time.Date(2022, 12, 7, 0, 0, 0, 0, loc)),
	)

	// sub-millisecond precision is truncated to milliseconds
	assert.Equal(
		t,
		"2022-12-06T23:00:00.999Z",
		formatInstant(time.Date(2022, 12, 6, 23, 0, 0, 999000000, time.UTC)),
	)
}

func TestTruncateBody(t *testing.T) {
	short := []byte("short body")
	assert.Equal(t, "short body", truncateBody(short))

	long := make([]byte, 1024)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, truncateBody(long), 256)
}
