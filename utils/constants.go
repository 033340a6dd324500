package utils

const (
	// Supported currency codes
	CurrencyUSD = "USD"
	CurrencyILS = "ILS"
	CurrencyEUR = "EUR"
	CurrencyJPY = "JPY"
	CurrencyGBP = "GBP"
	CurrencyAUD = "AUD"
	CurrencyCAD = "CAD"
	CurrencyZAR = "ZAR"

	// Payment methods
	MethodCash          = "cash"
	MethodCheck         = "check"
	MethodCreditCard    = "credit_card"
	MethodBankTransfer  = "bank_transfer"
	MethodStandingOrder = "standing_order"

	// Payment statuses
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"

	// Receipt types
	ReceiptTypeStandard  = "standard"
	ReceiptTypeTaxDeduct = "tax_deductible"

	// Receipt number generation
	ReceiptCharset = "0123456789"
	ReceiptLength  = 10

	// HTTP status messages
	ErrInvalidRequest   = "Invalid request"
	ErrPledgeNotFound   = "Pledge not found"
	ErrContactNotFound  = "Contact not found"
	ErrPaymentNotFound  = "Payment not found"
	ErrFailedToStore    = "Failed to store payment"
	ErrFailedToRetrieve = "Failed to retrieve data"

	// Precision for monetary calculations (2 decimal places)
	MoneyPrecision = 100.0
	// Precision for exchange rates (4 decimal places)
	RatePrecision = 10000.0

	// Allocations must balance against the payment total within a cent
	BalanceEpsilon = 0.01

	// DateFormat is the wire format for payment and rate dates
	DateFormat = "2006-01-02"
)

// Currencies lists every supported currency code.
var Currencies = []string{
	CurrencyUSD, CurrencyILS, CurrencyEUR, CurrencyJPY,
	CurrencyGBP, CurrencyAUD, CurrencyCAD, CurrencyZAR,
}

// IsSupportedCurrency reports whether code is one of the supported currencies.
func IsSupportedCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}
