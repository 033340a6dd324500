package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/expertdev121/pledges-backend/models"
	"github.com/expertdev121/pledges-backend/utils"
	"github.com/google/uuid"
)

// PaymentStore persists composed payment records. One call persists one
// payment together with its allocation rows.
type PaymentStore interface {
	CreatePayment(payment *models.Payment) error
}

// PledgeReader provides the read-only pledge and contact lookups used to
// populate normalization inputs. The composer never mutates pledges.
type PledgeReader interface {
	GetPledgeByID(pledgeID int) (*models.Pledge, error)
	GetPledgesByIDs(pledgeIDs []int) (map[int]*models.Pledge, error)
	GetContactName(contactID int) (string, error)
}

// PaymentService composes validated payment submissions into persistable
// records. One engine covers all four submission modes: simple
// (single-pledge), split (one contact, several pledges), third-party, and
// the multi-contact batch fan-out.
type PaymentService struct {
	store       PaymentStore
	pledges     PledgeReader
	rates       *RateService
	allocations *AllocationService
}

// NewPaymentService creates a new payment service
func NewPaymentService(store PaymentStore, pledges PledgeReader, rates *RateService, allocations *AllocationService) *PaymentService {
	return &PaymentService{
		store:       store,
		pledges:     pledges,
		rates:       rates,
		allocations: allocations,
	}
}

// CreatePayment validates, composes and persists a simple, split or
// third-party payment. All validation happens before the persistence
// call; nothing is ever partially submitted. Returned warnings report
// defaulted exchange rates and over-balance allocations.
func (s *PaymentService) CreatePayment(req *models.CreatePaymentRequest) (*models.Payment, []string, error) {
	payment, warnings, err := s.compose(req)
	if err != nil {
		return nil, nil, err
	}

	if err := s.store.CreatePayment(payment); err != nil {
		log.Printf("Failed to store payment: %v", err)
		return nil, nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return payment, warnings, nil
}

// Preview derives every computed field for an in-progress payment form
// without persisting anything. It is invoked after each form mutation and
// is deterministic for the same inputs.
func (s *PaymentService) Preview(req *models.CreatePaymentRequest) (*models.PaymentPreview, error) {
	asOf, err := utils.ValidateDate(req.PaymentDate, "paymentDate")
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateCurrency(req.Currency); err != nil {
		return nil, err
	}

	amountUSD, rate, warnings, err := s.rates.AmountInUSD(req.Amount, req.Currency, asOf)
	if err != nil {
		return nil, err
	}

	preview := &models.PaymentPreview{
		Amount:       req.Amount,
		Currency:     req.Currency,
		AmountUSD:    amountUSD,
		ExchangeRate: rate,
		BonusAmount:  computeBonus(req.Amount, req.BonusPercentage),
	}
	preview.Balanced = true
	preview.Warnings = warnings

	if len(req.Allocations) > 0 {
		pledges, err := s.lookupPledges(req.Allocations)
		if err != nil {
			return nil, err
		}
		normalized, err := s.allocations.Normalize(req.Amount, req.Currency, asOf, req.Allocations, pledges)
		if err != nil {
			return nil, err
		}
		preview.NormalizationResult = *normalized
		preview.Warnings = append(warnings, normalized.Warnings...)
	}

	return preview, nil
}

// CreateBatch fans one user-entered total out into independent
// per-contact payments. Allocations are partitioned by the owning contact
// of each pledge, and each contact with a positive subtotal becomes one
// third-party payment scaled to that subtotal.
//
// The per-contact submissions are issued concurrently and have no
// atomicity: one contact's failure neither blocks nor rolls back the
// others, and the result reports both sides.
func (s *PaymentService) CreateBatch(req *models.CreateBatchRequest) (*models.BatchResult, error) {
	asOf, err := utils.ValidateDate(req.PaymentDate, "paymentDate")
	if err != nil {
		return nil, err
	}
	if req.PayerContactID == nil {
		return nil, utils.NewValidationError("payerContactId is required")
	}

	pledges, err := s.lookupPledges(req.Allocations)
	if err != nil {
		return nil, err
	}

	normalized, err := s.allocations.Normalize(req.TotalAmount, req.Currency, asOf, req.Allocations, pledges)
	if err != nil {
		return nil, err
	}
	if !normalized.Balanced {
		return nil, unbalancedError(normalized.Remainder)
	}

	intents, err := s.partitionByContact(req, asOf, normalized.Allocations)
	if err != nil {
		return nil, err
	}

	// One correlation id across the whole fan-out: with no batch
	// atomicity, this is what ties a partial success back to its
	// submission.
	batchID := uuid.New().String()
	for _, intent := range intents {
		intent.payment.BatchID = batchID
	}

	result := &models.BatchResult{
		BatchID:     batchID,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
	}

	// Independent fan-out: each submission succeeds or fails on its own.
	type outcome struct {
		submission models.ContactSubmission
		err        error
	}
	outcomes := make([]outcome, len(intents))

	var wg sync.WaitGroup
	for i := range intents {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			intent := intents[i]
			err := s.store.CreatePayment(intent.payment)
			submission := models.ContactSubmission{
				ContactID:   intent.contactID,
				ContactName: intent.contactName,
				Amount:      intent.payment.Amount,
			}
			if err == nil {
				submission.PaymentID = intent.payment.ID
			} else {
				submission.Error = err.Error()
			}
			outcomes[i] = outcome{submission: submission, err: err}
		}(i)
	}
	wg.Wait()

	for _, o := range outcomes {
		if o.err != nil {
			log.Printf("Batch payment for contact %d failed: %v", o.submission.ContactID, o.err)
			result.Failed = append(result.Failed, o.submission)
		} else {
			result.Succeeded = append(result.Succeeded, o.submission)
		}
	}
	result.SucceededCount = len(result.Succeeded)
	result.FailedCount = len(result.Failed)

	return result, nil
}

// contactIntent pairs a composed per-contact payment with its contact
type contactIntent struct {
	contactID   int
	contactName string
	payment     *models.Payment
}

// compose builds the persistable record for a simple, split or
// third-party submission without touching the store.
func (s *PaymentService) compose(req *models.CreatePaymentRequest) (*models.Payment, []string, error) {
	asOf, err := utils.ValidateDate(req.PaymentDate, "paymentDate")
	if err != nil {
		return nil, nil, err
	}
	if err := utils.ValidateCurrency(req.Currency); err != nil {
		return nil, nil, err
	}
	if err := utils.ValidateRequired(req.PaymentMethod, "paymentMethod"); err != nil {
		return nil, nil, err
	}
	if err := utils.ValidateRequired(req.PaymentStatus, "paymentStatus"); err != nil {
		return nil, nil, err
	}

	// Simple and split mode are mutually exclusive by construction.
	hasPledge := req.PledgeID != nil && *req.PledgeID > 0
	hasAllocations := len(req.Allocations) > 0
	if hasPledge == hasAllocations {
		return nil, nil, utils.NewValidationError("exactly one of pledgeId or allocations must be provided")
	}

	if req.IsThirdParty && req.PayerContactID == nil {
		return nil, nil, utils.NewValidationError("payerContactId is required for third-party payments")
	}

	amountUSD, rate, warnings, err := s.rates.AmountInUSD(req.Amount, req.Currency, asOf)
	if err != nil {
		return nil, nil, err
	}

	payment := &models.Payment{
		Amount:          req.Amount,
		Currency:        req.Currency,
		AmountUSD:       amountUSD,
		ExchangeRate:    rate,
		PaymentDate:     req.PaymentDate,
		ReceivedDate:    req.ReceivedDate,
		PaymentMethod:   req.PaymentMethod,
		MethodDetail:    req.MethodDetail,
		Account:         req.Account,
		CheckDate:       req.CheckDate,
		CheckNumber:     req.CheckNumber,
		PaymentStatus:   req.PaymentStatus,
		SolicitorID:     req.SolicitorID,
		BonusPercentage: req.BonusPercentage,
		BonusAmount:     computeBonus(req.Amount, req.BonusPercentage),
		BonusRuleID:     req.BonusRuleID,
		Notes:           req.Notes,
		IsThirdParty:    req.IsThirdParty,
		PayerContactID:  req.PayerContactID,
	}

	if hasPledge {
		// Simple mode: the pledge reference sits on the record itself.
		if _, err := s.pledges.GetPledgeByID(*req.PledgeID); err != nil {
			return nil, nil, utils.NewNotFoundError("Pledge")
		}
		payment.PledgeID = req.PledgeID
		payment.InstallmentScheduleID = req.InstallmentScheduleID
		return payment, warnings, nil
	}

	// Split mode: the full allocation set rides on the record,
	// pledge_id stays null.
	pledges, err := s.lookupPledges(req.Allocations)
	if err != nil {
		return nil, nil, err
	}
	normalized, err := s.allocations.Normalize(req.Amount, req.Currency, asOf, req.Allocations, pledges)
	if err != nil {
		return nil, nil, err
	}
	if !normalized.Balanced {
		return nil, nil, unbalancedError(normalized.Remainder)
	}
	warnings = append(warnings, normalized.Warnings...)
	for _, a := range normalized.Allocations {
		if a.ExceedsBalance {
			warnings = append(warnings, fmt.Sprintf(
				"allocation of %.2f %s exceeds balance of pledge %d", a.AmountInPledgeCurrency, a.PledgeCurrency, a.PledgeID))
		}
	}

	payment.Allocations = buildAllocationRows(normalized.Allocations)
	return payment, warnings, nil
}

// partitionByContact groups balanced, normalized allocations by owning
// contact and composes one independent intent per contact with a
// positive subtotal. Contact order follows first appearance in the
// submitted allocation list.
func (s *PaymentService) partitionByContact(req *models.CreateBatchRequest, asOf time.Time, allocations []models.NormalizedAllocation) ([]contactIntent, error) {
	var order []int
	byContact := make(map[int][]models.NormalizedAllocation)
	for _, a := range allocations {
		if _, seen := byContact[a.ContactID]; !seen {
			order = append(order, a.ContactID)
		}
		byContact[a.ContactID] = append(byContact[a.ContactID], a)
	}

	var intents []contactIntent
	for _, contactID := range order {
		lines := byContact[contactID]

		var subtotal float64
		for _, a := range lines {
			subtotal += a.Amount
		}
		subtotal = utils.Round(subtotal)
		if subtotal <= 0 {
			continue
		}

		amountUSD, rate, _, err := s.rates.AmountInUSD(subtotal, req.Currency, asOf)
		if err != nil {
			return nil, err
		}

		contactName, err := s.pledges.GetContactName(contactID)
		if err != nil {
			contactName = fmt.Sprintf("Contact %d", contactID)
		}

		thirdPartyContact := contactID
		payment := &models.Payment{
			Amount:              subtotal,
			Currency:            req.Currency,
			AmountUSD:           amountUSD,
			ExchangeRate:        rate,
			PaymentDate:         req.PaymentDate,
			ReceivedDate:        req.ReceivedDate,
			PaymentMethod:       req.PaymentMethod,
			MethodDetail:        req.MethodDetail,
			Account:             req.Account,
			PaymentStatus:       req.PaymentStatus,
			SolicitorID:         req.SolicitorID,
			BonusPercentage:     req.BonusPercentage,
			BonusAmount:         computeBonus(subtotal, req.BonusPercentage),
			BonusRuleID:         req.BonusRuleID,
			Notes:               req.Notes,
			IsThirdParty:        true,
			PayerContactID:      req.PayerContactID,
			ThirdPartyContactID: &thirdPartyContact,
		}

		if len(lines) == 1 {
			// A single line collapses to simple mode for this contact.
			pledgeID := lines[0].PledgeID
			payment.PledgeID = &pledgeID
			payment.InstallmentScheduleID = lines[0].InstallmentScheduleID
		} else {
			payment.Allocations = buildAllocationRows(lines)
		}

		intents = append(intents, contactIntent{
			contactID:   contactID,
			contactName: contactName,
			payment:     payment,
		})
	}

	return intents, nil
}

// lookupPledges resolves the pledges referenced by a set of allocation lines
func (s *PaymentService) lookupPledges(lines []models.AllocationInput) (map[int]*models.Pledge, error) {
	ids := make([]int, 0, len(lines))
	for _, line := range lines {
		if line.PledgeID <= 0 {
			return nil, utils.NewValidationError("allocation pledgeId is required")
		}
		ids = append(ids, line.PledgeID)
	}

	pledges, err := s.pledges.GetPledgesByIDs(ids)
	if err != nil {
		return nil, utils.NewNotFoundError("Pledge")
	}
	return pledges, nil
}

// buildAllocationRows turns normalized allocations into persistable rows,
// issuing receipt numbers where a receipt was requested without one.
func buildAllocationRows(normalized []models.NormalizedAllocation) []models.Allocation {
	rows := make([]models.Allocation, 0, len(normalized))
	for _, a := range normalized {
		receiptNumber := a.ReceiptNumber
		receiptType := a.ReceiptType
		if a.ReceiptIssued && receiptNumber == "" {
			receiptNumber = utils.GenerateReceiptNumber()
		}
		if a.ReceiptIssued && receiptType == "" {
			receiptType = utils.ReceiptTypeStandard
		}

		rows = append(rows, models.Allocation{
			PledgeID:               a.PledgeID,
			Amount:                 a.Amount,
			AmountInPledgeCurrency: a.AmountInPledgeCurrency,
			InstallmentScheduleID:  a.InstallmentScheduleID,
			ReceiptNumber:          receiptNumber,
			ReceiptType:            receiptType,
			ReceiptIssued:          a.ReceiptIssued,
			Notes:                  a.Notes,
		})
	}
	return rows
}

// computeBonus derives a solicitor bonus from a payment amount. Nil
// percentage clears the bonus to nil.
func computeBonus(amount float64, percentage *float64) *float64 {
	if percentage == nil {
		return nil
	}
	bonus := utils.Round(amount * *percentage / 100)
	return &bonus
}

func unbalancedError(remainder float64) error {
	return utils.NewValidationError(fmt.Sprintf(
		"allocations do not sum to payment amount: %.2f remaining to allocate", remainder))
}
