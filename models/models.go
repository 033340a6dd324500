// models/models.go
package models

import "time"

// Contact represents a donor or payer
type Contact struct {
	ID        int    `json:"id" db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email,omitempty" db:"email"`
}

// Pledge represents a donor's commitment to give a specified amount.
// It is read-only to the payment engine; only payments mutate its balance
// downstream.
type Pledge struct {
	ID             int       `json:"id" db:"id"`
	ContactID      int       `json:"contactId" db:"contact_id"`
	Currency       string    `json:"currency" db:"currency"`
	OriginalAmount float64   `json:"originalAmount" db:"original_amount"`
	Balance        float64   `json:"balance" db:"balance"`
	Description    string    `json:"description,omitempty" db:"description"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Solicitor represents a fundraiser credited with a bonus on payments
type Solicitor struct {
	ID             int     `json:"id" db:"id"`
	ContactID      int     `json:"contactId" db:"contact_id"`
	Status         string  `json:"status" db:"status"`
	Notes          string  `json:"notes,omitempty" db:"notes"`
	CommissionRate float64 `json:"commissionRate" db:"commission_rate"`
}

// InstallmentSchedule represents one expected installment of a payment plan
type InstallmentSchedule struct {
	ID       int     `json:"id" db:"id"`
	PledgeID int     `json:"pledgeId" db:"pledge_id"`
	DueDate  string  `json:"dueDate" db:"due_date"`
	Amount   float64 `json:"amount" db:"amount"`
	Currency string  `json:"currency" db:"currency"`
	Status   string  `json:"status" db:"status"`
}

// ExchangeRate is one currency's units-per-USD quote for a date
type ExchangeRate struct {
	Currency string    `json:"currency" db:"currency"`
	Rate     float64   `json:"rate" db:"rate"`
	RateDate time.Time `json:"rateDate" db:"rate_date"`
}

// PledgeSummary is the read-only projection used to populate allocation
// pickers: balance, currency and owning contact for one pledge.
type PledgeSummary struct {
	ID          int     `json:"id"`
	ContactID   int     `json:"contactId"`
	ContactName string  `json:"contactName"`
	Currency    string  `json:"currency"`
	Balance     float64 `json:"balance"`
	Description string  `json:"description,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
