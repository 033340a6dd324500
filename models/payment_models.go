package models

import (
	"time"
)

// Payment represents a persisted payment record. PledgeID is set for
// simple (single-pledge) payments and nil for split payments, which carry
// their pledge references in Allocations instead. The two modes are
// mutually exclusive.
type Payment struct {
	ID                    int          `json:"id" db:"id"`
	PledgeID              *int         `json:"pledgeId" db:"pledge_id"`
	Amount                float64      `json:"amount" db:"amount"`
	Currency              string       `json:"currency" db:"currency"`
	AmountUSD             float64      `json:"amountUsd" db:"amount_usd"`
	ExchangeRate          float64      `json:"exchangeRate" db:"exchange_rate"`
	PaymentDate           string       `json:"paymentDate" db:"payment_date"`
	ReceivedDate          string       `json:"receivedDate,omitempty" db:"received_date"`
	PaymentMethod         string       `json:"paymentMethod" db:"payment_method"`
	MethodDetail          string       `json:"methodDetail,omitempty" db:"method_detail"`
	Account               string       `json:"account,omitempty" db:"account"`
	CheckDate             string       `json:"checkDate,omitempty" db:"check_date"`
	CheckNumber           string       `json:"checkNumber,omitempty" db:"check_number"`
	PaymentStatus         string       `json:"paymentStatus" db:"payment_status"`
	InstallmentScheduleID *int         `json:"installmentScheduleId,omitempty" db:"installment_schedule_id"`
	SolicitorID           *int         `json:"solicitorId,omitempty" db:"solicitor_id"`
	BonusPercentage       *float64     `json:"bonusPercentage,omitempty" db:"bonus_percentage"`
	BonusAmount           *float64     `json:"bonusAmount,omitempty" db:"bonus_amount"`
	BonusRuleID           *int         `json:"bonusRuleId,omitempty" db:"bonus_rule_id"`
	Notes                 string       `json:"notes,omitempty" db:"notes"`
	IsThirdParty          bool         `json:"isThirdPartyPayment" db:"is_third_party"`
	PayerContactID        *int         `json:"payerContactId,omitempty" db:"payer_contact_id"`
	ThirdPartyContactID   *int         `json:"thirdPartyContactId,omitempty" db:"third_party_contact_id"`
	BatchID               string       `json:"batchId,omitempty" db:"batch_id"`
	Allocations           []Allocation `json:"allocations,omitempty"`
	CreatedAt             time.Time    `json:"createdAt" db:"created_at"`
}

// Allocation attributes a portion of one payment to one pledge. Amount is
// in the payment's currency; AmountInPledgeCurrency is derived for
// display and bookkeeping.
type Allocation struct {
	ID                     int     `json:"id" db:"id"`
	PaymentID              int     `json:"paymentId" db:"payment_id"`
	PledgeID               int     `json:"pledgeId" db:"pledge_id"`
	Amount                 float64 `json:"amount" db:"amount"`
	AmountInPledgeCurrency float64 `json:"amountInPledgeCurrency" db:"amount_in_pledge_currency"`
	InstallmentScheduleID  *int    `json:"installmentScheduleId,omitempty" db:"installment_schedule_id"`
	ReceiptNumber          string  `json:"receiptNumber,omitempty" db:"receipt_number"`
	ReceiptType            string  `json:"receiptType,omitempty" db:"receipt_type"`
	ReceiptIssued          bool    `json:"receiptIssued" db:"receipt_issued"`
	Notes                  string  `json:"notes,omitempty" db:"notes"`
}

// AllocationInput is one allocation line as submitted from the form
type AllocationInput struct {
	PledgeID              int     `json:"pledgeId" binding:"required"`
	Amount                float64 `json:"amount" binding:"required,gt=0"`
	InstallmentScheduleID *int    `json:"installmentScheduleId,omitempty"`
	ReceiptNumber         string  `json:"receiptNumber,omitempty"`
	ReceiptType           string  `json:"receiptType,omitempty"`
	ReceiptIssued         bool    `json:"receiptIssued,omitempty"`
	Notes                 string  `json:"notes,omitempty"`
}

// CreatePaymentRequest is the request body for creating a simple, split
// or third-party payment. Exactly one of PledgeID or Allocations must be
// provided.
type CreatePaymentRequest struct {
	Amount                float64           `json:"amount" binding:"required,gt=0"`
	Currency              string            `json:"currency" binding:"required"`
	PaymentDate           string            `json:"paymentDate" binding:"required"`
	ReceivedDate          string            `json:"receivedDate,omitempty"`
	PaymentMethod         string            `json:"paymentMethod" binding:"required"`
	MethodDetail          string            `json:"methodDetail,omitempty"`
	Account               string            `json:"account,omitempty"`
	CheckDate             string            `json:"checkDate,omitempty"`
	CheckNumber           string            `json:"checkNumber,omitempty"`
	PaymentStatus         string            `json:"paymentStatus" binding:"required"`
	PledgeID              *int              `json:"pledgeId,omitempty"`
	InstallmentScheduleID *int              `json:"installmentScheduleId,omitempty"`
	Allocations           []AllocationInput `json:"allocations,omitempty"`
	SolicitorID           *int              `json:"solicitorId,omitempty"`
	BonusPercentage       *float64          `json:"bonusPercentage,omitempty"`
	BonusRuleID           *int              `json:"bonusRuleId,omitempty"`
	Notes                 string            `json:"notes,omitempty"`
	IsThirdParty          bool              `json:"isThirdPartyPayment,omitempty"`
	PayerContactID        *int              `json:"payerContactId,omitempty"`
}

// CreateBatchRequest is the request body for a multi-contact payment:
// one user-entered total fanned out into independent per-contact payments
type CreateBatchRequest struct {
	TotalAmount     float64           `json:"totalAmount" binding:"required,gt=0"`
	Currency        string            `json:"currency" binding:"required"`
	PaymentDate     string            `json:"paymentDate" binding:"required"`
	ReceivedDate    string            `json:"receivedDate,omitempty"`
	PaymentMethod   string            `json:"paymentMethod" binding:"required"`
	MethodDetail    string            `json:"methodDetail,omitempty"`
	Account         string            `json:"account,omitempty"`
	PaymentStatus   string            `json:"paymentStatus" binding:"required"`
	Allocations     []AllocationInput `json:"allocations" binding:"required,min=1"`
	SolicitorID     *int              `json:"solicitorId,omitempty"`
	BonusPercentage *float64          `json:"bonusPercentage,omitempty"`
	BonusRuleID     *int              `json:"bonusRuleId,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	PayerContactID  *int              `json:"payerContactId" binding:"required"`
}

// NormalizedAllocation is one allocation line after normalization: the
// submitted amount in the payment currency plus derived pledge-currency
// figures.
type NormalizedAllocation struct {
	PledgeID               int     `json:"pledgeId"`
	ContactID              int     `json:"contactId"`
	PledgeCurrency         string  `json:"pledgeCurrency"`
	Amount                 float64 `json:"amount"`
	AmountInPledgeCurrency float64 `json:"amountInPledgeCurrency"`
	RemainingBalance       float64 `json:"remainingBalance"`
	ExceedsBalance         bool    `json:"exceedsBalance"`
	InstallmentScheduleID  *int    `json:"installmentScheduleId,omitempty"`
	ReceiptNumber          string  `json:"receiptNumber,omitempty"`
	ReceiptType            string  `json:"receiptType,omitempty"`
	ReceiptIssued          bool    `json:"receiptIssued"`
	Notes                  string  `json:"notes,omitempty"`
}

// NormalizationResult is the outcome of validating and normalizing a set
// of allocation lines against a payment total. Balanced reports the sum
// invariant; Remainder is the signed amount still to allocate.
type NormalizationResult struct {
	Balanced    bool                   `json:"balanced"`
	Remainder   float64                `json:"remainder"`
	Allocations []NormalizedAllocation `json:"allocations"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// PaymentPreview is the response for the preview endpoint: all derived
// fields for the in-progress form, nothing persisted.
type PaymentPreview struct {
	Amount       float64  `json:"amount"`
	Currency     string   `json:"currency"`
	AmountUSD    float64  `json:"amountUsd"`
	ExchangeRate float64  `json:"exchangeRate"`
	BonusAmount  *float64 `json:"bonusAmount,omitempty"`
	NormalizationResult
}

// ContactSubmission is the per-contact outcome of a multi-contact batch
type ContactSubmission struct {
	ContactID   int     `json:"contactId"`
	ContactName string  `json:"contactName"`
	Amount      float64 `json:"amount"`
	PaymentID   int     `json:"paymentId,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// BatchResult reports the fan-out outcome of a multi-contact batch.
// There is no atomicity across contacts: partial success is expected and
// both lists can be non-empty.
type BatchResult struct {
	BatchID        string              `json:"batchId"`
	TotalAmount    float64             `json:"totalAmount"`
	Currency       string              `json:"currency"`
	SucceededCount int                 `json:"succeededCount"`
	FailedCount    int                 `json:"failedCount"`
	Succeeded      []ContactSubmission `json:"succeeded"`
	Failed         []ContactSubmission `json:"failed"`
}

// ListPaymentsRequest request model
type ListPaymentsRequest struct {
	ContactID int `json:"contactId" binding:"required"`
}

// RemovePaymentRequest request model
type RemovePaymentRequest struct {
	PaymentID int `json:"paymentId" binding:"required"`
}

// GetRatesRequest request model; Date defaults to today when omitted
type GetRatesRequest struct {
	Date string `json:"date,omitempty"`
}

// ConvertRequest request model for the form display helper
type ConvertRequest struct {
	Amount       float64 `json:"amount" binding:"min=0"`
	FromCurrency string  `json:"fromCurrency" binding:"required"`
	ToCurrency   string  `json:"toCurrency" binding:"required"`
	Date         string  `json:"date,omitempty"`
}

// ConvertResponse response model
type ConvertResponse struct {
	Amount    float64  `json:"amount"`
	Converted float64  `json:"converted"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ListPledgesRequest request model
type ListPledgesRequest struct {
	ContactID int `json:"contactId" binding:"required"`
}
