package services

import (
	"fmt"
	"log"
	"time"

	"github.com/expertdev121/pledges-backend/utils"
)

// RateSource provides the daily exchange rate table: units of currency
// per 1 USD, keyed by currency code. Implementations may fall back to the
// latest available date on or before the requested one.
type RateSource interface {
	GetRatesForDate(asOf time.Time) (map[string]float64, error)
}

// RateService resolves same-day USD conversion rates and performs
// two-hop currency conversion through USD. Direct cross-rates are never
// assumed to exist.
type RateService struct {
	source RateSource
}

// NewRateService creates a new rate service
func NewRateService(source RateSource) *RateService {
	return &RateService{source: source}
}

// RateToUSD returns the units-per-USD rate for a currency on a date,
// rounded to 4 decimal places. USD always resolves to 1 without a lookup.
// A missing or non-positive rate resolves to 1 with defaulted set, so the
// caller can surface that the conversion math silently changed.
func (s *RateService) RateToUSD(currency string, asOf time.Time) (float64, bool, error) {
	if currency == utils.CurrencyUSD {
		return 1, false, nil
	}

	rates, err := s.source.GetRatesForDate(asOf)
	if err != nil {
		return 0, false, utils.NewInternalError("Failed to retrieve exchange rates")
	}

	rate, ok := rates[currency]
	if !ok || rate <= 0 {
		log.Printf("Warning: no exchange rate for %s on %s, defaulting to 1",
			currency, asOf.Format(utils.DateFormat))
		return 1, true, nil
	}

	return utils.RoundRate(rate), false, nil
}

// Convert converts an amount between two currencies via USD and rounds
// the result to 2 decimal places. Same-currency conversion is an identity
// apart from rounding and performs no lookup.
func (s *RateService) Convert(amount float64, fromCurrency, toCurrency string, asOf time.Time) (float64, []string, error) {
	if fromCurrency == toCurrency {
		return utils.Round(amount), nil, nil
	}

	var warnings []string

	usd := amount
	if fromCurrency != utils.CurrencyUSD {
		rate, defaulted, err := s.RateToUSD(fromCurrency, asOf)
		if err != nil {
			return 0, nil, err
		}
		if defaulted {
			warnings = append(warnings, missingRateWarning(fromCurrency, asOf))
		}
		usd = amount / rate
	}

	result := usd
	if toCurrency != utils.CurrencyUSD {
		rate, defaulted, err := s.RateToUSD(toCurrency, asOf)
		if err != nil {
			return 0, nil, err
		}
		if defaulted {
			warnings = append(warnings, missingRateWarning(toCurrency, asOf))
		}
		result = usd * rate
	}

	return utils.Round(result), warnings, nil
}

// AmountInUSD computes a payment's USD amount and the exchange rate used
// for bookkeeping. The USD amount is rounded to 2 decimal places.
func (s *RateService) AmountInUSD(amount float64, currency string, asOf time.Time) (float64, float64, []string, error) {
	if currency == utils.CurrencyUSD {
		return utils.Round(amount), 1, nil, nil
	}

	rate, defaulted, err := s.RateToUSD(currency, asOf)
	if err != nil {
		return 0, 0, nil, err
	}

	var warnings []string
	if defaulted {
		warnings = append(warnings, missingRateWarning(currency, asOf))
	}

	return utils.Round(amount / rate), rate, warnings, nil
}

func missingRateWarning(currency string, asOf time.Time) string {
	return fmt.Sprintf("no exchange rate for %s on %s, defaulted to 1",
		currency, asOf.Format(utils.DateFormat))
}
