package services

import (
	"fmt"
	"time"

	"github.com/expertdev121/pledges-backend/models"
	"github.com/expertdev121/pledges-backend/utils"
)

// AllocationService normalizes and validates the allocation lines of a
// payment. It is pure with respect to persistence: it only computes and
// validates, and the same inputs always produce the same result. It is
// re-run in full every time an amount, currency or pledge selection
// changes.
type AllocationService struct {
	rates *RateService
}

// NewAllocationService creates a new allocation service
func NewAllocationService(rates *RateService) *AllocationService {
	return &AllocationService{rates: rates}
}

// Normalize checks every allocation line against the payment total and
// derives each line's display-only pledge-currency amount. The submitted
// amount stays in the payment currency, which is the unit of record.
//
// Structural problems (no lines, bad pledge reference, non-positive
// amount) return an error. An out-of-balance sum is not an error here:
// the result carries Balanced=false and the signed remainder so callers
// can render "remaining to allocate". Composition rejects unbalanced
// results before persisting.
func (s *AllocationService) Normalize(
	paymentAmount float64,
	paymentCurrency string,
	asOf time.Time,
	lines []models.AllocationInput,
	pledges map[int]*models.Pledge,
) (*models.NormalizationResult, error) {
	if err := utils.ValidateNotEmpty(lines, "allocations"); err != nil {
		return nil, err
	}
	if err := utils.ValidateCurrency(paymentCurrency); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositive(paymentAmount, "payment amount"); err != nil {
		return nil, err
	}

	result := &models.NormalizationResult{
		Allocations: make([]models.NormalizedAllocation, 0, len(lines)),
	}

	var sum float64
	for i, line := range lines {
		if err := utils.ValidateAllocationLine(line.PledgeID, line.Amount); err != nil {
			return nil, utils.NewValidationError(fmt.Sprintf("Allocation %d: %s", i+1, err.Error()))
		}

		pledge, ok := pledges[line.PledgeID]
		if !ok {
			return nil, utils.NewValidationError(fmt.Sprintf("Allocation %d: pledge %d not found", i+1, line.PledgeID))
		}

		inPledgeCurrency, warnings, err := s.rates.Convert(line.Amount, paymentCurrency, pledge.Currency, asOf)
		if err != nil {
			return nil, err
		}
		result.Warnings = append(result.Warnings, warnings...)

		remaining := utils.Round(pledge.Balance - inPledgeCurrency)

		result.Allocations = append(result.Allocations, models.NormalizedAllocation{
			PledgeID:               pledge.ID,
			ContactID:              pledge.ContactID,
			PledgeCurrency:         pledge.Currency,
			Amount:                 line.Amount,
			AmountInPledgeCurrency: inPledgeCurrency,
			RemainingBalance:       remaining,
			ExceedsBalance:         remaining < 0,
			InstallmentScheduleID:  line.InstallmentScheduleID,
			ReceiptNumber:          line.ReceiptNumber,
			ReceiptType:            line.ReceiptType,
			ReceiptIssued:          line.ReceiptIssued,
			Notes:                  line.Notes,
		})

		sum += line.Amount
	}

	result.Remainder = utils.Round(paymentAmount - sum)
	result.Balanced = utils.WithinEpsilon(sum, paymentAmount)

	return result, nil
}
