package services

import (
	"errors"
	"testing"
	"time"

	"github.com/expertdev121/pledges-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRateSource serves a fixed rate table for any date
type fakeRateSource struct {
	rates map[string]float64
	err   error
	calls int
}

func (f *fakeRateSource) GetRatesForDate(asOf time.Time) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

func testDate() time.Time {
	return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
}

func TestRateService_RateToUSD_USDNeverLooksUp(t *testing.T) {
	source := &fakeRateSource{err: errors.New("source down")}
	service := NewRateService(source)

	rate, defaulted, err := service.RateToUSD("USD", testDate())

	assert.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.False(t, defaulted)
	assert.Equal(t, 0, source.calls, "USD must resolve without touching the rate source")
}

func TestRateService_RateToUSD_MissingRateDefaultsToOne(t *testing.T) {
	source := &fakeRateSource{rates: map[string]float64{"ILS": 3.5}}
	service := NewRateService(source)

	rate, defaulted, err := service.RateToUSD("ZAR", testDate())

	assert.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.True(t, defaulted, "missing rate must be reported as defaulted")
}

func TestRateService_RateToUSD_NonPositiveRateDefaultsToOne(t *testing.T) {
	source := &fakeRateSource{rates: map[string]float64{"EUR": -0.9, "JPY": 0}}
	service := NewRateService(source)

	for _, currency := range []string{"EUR", "JPY"} {
		rate, defaulted, err := service.RateToUSD(currency, testDate())
		assert.NoError(t, err)
		assert.Equal(t, 1.0, rate, "non-positive rate for %s must default", currency)
		assert.True(t, defaulted)
	}
}

func TestRateService_Convert_SameCurrencyIdentity(t *testing.T) {
	// An erroring source proves the identity path performs no lookup
	service := NewRateService(&fakeRateSource{err: errors.New("source down")})

	amounts := []float64{0, 0.01, 99.999, 1234.56, 100000}
	for _, currency := range utils.Currencies {
		for _, amount := range amounts {
			converted, warnings, err := service.Convert(amount, currency, currency, testDate())
			require.NoError(t, err)
			assert.Equal(t, utils.Round(amount), converted)
			assert.Empty(t, warnings)
		}
	}
}

func TestRateService_Convert_ViaUSD(t *testing.T) {
	service := NewRateService(&fakeRateSource{rates: map[string]float64{
		"ILS": 3.5,
		"EUR": 0.9,
	}})

	tests := []struct {
		name     string
		amount   float64
		from     string
		to       string
		expected float64
	}{
		{"usd to ils", 100, "USD", "ILS", 350},
		{"ils to usd", 350, "ILS", "USD", 100},
		{"usd to eur display rate", 100, "USD", "EUR", 90},
		{"cross ils to eur", 35, "ILS", "EUR", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converted, warnings, err := service.Convert(tt.amount, tt.from, tt.to, testDate())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, converted)
			assert.Empty(t, warnings)
		})
	}
}

func TestRateService_Convert_CrossCurrencyTransitivity(t *testing.T) {
	service := NewRateService(&fakeRateSource{rates: map[string]float64{
		"ILS": 3.5,
		"EUR": 0.9,
		"GBP": 0.8,
	}})

	amounts := []float64{10, 123.45, 999.99}
	for _, x := range amounts {
		ab, _, err := service.Convert(x, "ILS", "EUR", testDate())
		require.NoError(t, err)
		abc, _, err := service.Convert(ab, "EUR", "GBP", testDate())
		require.NoError(t, err)
		ac, _, err := service.Convert(x, "ILS", "GBP", testDate())
		require.NoError(t, err)

		assert.InDelta(t, ac, abc, 0.02, "two-hop and direct conversion must agree within rounding for %v", x)
	}
}

func TestRateService_Convert_USDRoundTrip(t *testing.T) {
	service := NewRateService(&fakeRateSource{rates: map[string]float64{
		"ILS": 3.5,
		"EUR": 0.9,
		"JPY": 147.25,
	}})

	amounts := []float64{1, 50, 100, 2500.75}
	for _, currency := range []string{"ILS", "EUR", "JPY"} {
		for _, x := range amounts {
			there, _, err := service.Convert(x, "USD", currency, testDate())
			require.NoError(t, err)
			back, _, err := service.Convert(there, currency, "USD", testDate())
			require.NoError(t, err)

			assert.InDelta(t, x, back, 0.01, "round trip USD->%s->USD for %v", currency, x)
		}
	}
}

func TestRateService_Convert_MissingRateWarns(t *testing.T) {
	service := NewRateService(&fakeRateSource{rates: map[string]float64{}})

	converted, warnings, err := service.Convert(100, "USD", "ZAR", testDate())

	require.NoError(t, err)
	assert.Equal(t, 100.0, converted, "defaulted rate of 1 leaves the amount unchanged")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "ZAR")
	assert.Contains(t, warnings[0], "defaulted to 1")
}

func TestRateService_AmountInUSD(t *testing.T) {
	service := NewRateService(&fakeRateSource{rates: map[string]float64{
		"ILS": 3.5,
	}})

	amountUSD, rate, warnings, err := service.AmountInUSD(350, "ILS", testDate())
	require.NoError(t, err)
	assert.Equal(t, 100.0, amountUSD)
	assert.Equal(t, 3.5, rate)
	assert.Empty(t, warnings)

	amountUSD, rate, warnings, err = service.AmountInUSD(500, "USD", testDate())
	require.NoError(t, err)
	assert.Equal(t, 500.0, amountUSD)
	assert.Equal(t, 1.0, rate)
	assert.Empty(t, warnings)
}

func TestRateService_RateRounding(t *testing.T) {
	service := NewRateService(&fakeRateSource{rates: map[string]float64{
		"ILS": 3.123456,
	}})

	rate, defaulted, err := service.RateToUSD("ILS", testDate())
	require.NoError(t, err)
	assert.False(t, defaulted)
	assert.Equal(t, 3.1235, rate, "rates are rounded to 4 decimal places")
}
