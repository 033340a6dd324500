package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// RateRepository reads the daily exchange rate table. Rates are stored as
// units of currency per 1 USD.
type RateRepository struct {
	db *sql.DB
}

// NewRateRepository creates a new rate repository
func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// GetRatesForDate retrieves the rate table for the newest rate date on or
// before the requested date. Returns an empty map when no rates exist at
// all; callers treat missing currencies as rate 1.
func (r *RateRepository) GetRatesForDate(asOf time.Time) (map[string]float64, error) {
	var rateDate sql.NullTime
	err := r.db.QueryRow(
		"SELECT MAX(rate_date) FROM exchange_rates WHERE rate_date <= $1",
		asOf,
	).Scan(&rateDate)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to resolve rate date: %v", err)
	}
	if !rateDate.Valid {
		return map[string]float64{}, nil
	}

	rows, err := r.db.Query(
		"SELECT currency, rate FROM exchange_rates WHERE rate_date = $1",
		rateDate.Time,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rates: %v", err)
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var currency string
		var rate float64
		if err := rows.Scan(&currency, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %v", err)
		}
		rates[currency] = rate
	}

	return rates, rows.Err()
}
