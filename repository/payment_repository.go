package repository

import (
	"database/sql"
	"fmt"

	"github.com/expertdev121/pledges-backend/models"
)

// PaymentRepository handles payment data operations
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment inserts a payment and its allocation rows in one
// transaction. A split payment either lands whole or not at all; there is
// deliberately no transaction spanning multiple payments of a batch.
func (r *PaymentRepository) CreatePayment(payment *models.Payment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO payments (
			pledge_id, amount, currency, amount_usd, exchange_rate,
			payment_date, received_date, payment_method, method_detail, account,
			check_date, check_number, payment_status, installment_schedule_id,
			solicitor_id, bonus_percentage, bonus_amount, bonus_rule_id,
			notes, is_third_party, payer_contact_id, third_party_contact_id, batch_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at`,
		payment.PledgeID, payment.Amount, payment.Currency, payment.AmountUSD,
		payment.ExchangeRate, payment.PaymentDate, payment.ReceivedDate,
		payment.PaymentMethod, payment.MethodDetail, payment.Account,
		payment.CheckDate, payment.CheckNumber, payment.PaymentStatus,
		payment.InstallmentScheduleID, payment.SolicitorID, payment.BonusPercentage,
		payment.BonusAmount, payment.BonusRuleID, payment.Notes, payment.IsThirdParty,
		payment.PayerContactID, payment.ThirdPartyContactID, payment.BatchID,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}

	for i := range payment.Allocations {
		alloc := &payment.Allocations[i]
		alloc.PaymentID = payment.ID
		err = tx.QueryRow(
			`INSERT INTO payment_allocations (
				payment_id, pledge_id, amount, amount_in_pledge_currency,
				installment_schedule_id, receipt_number, receipt_type,
				receipt_issued, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			alloc.PaymentID, alloc.PledgeID, alloc.Amount, alloc.AmountInPledgeCurrency,
			alloc.InstallmentScheduleID, alloc.ReceiptNumber, alloc.ReceiptType,
			alloc.ReceiptIssued, alloc.Notes,
		).Scan(&alloc.ID)
		if err != nil {
			return fmt.Errorf("failed to insert allocation: %v", err)
		}
	}

	return tx.Commit()
}

// GetPaymentByID retrieves a payment with its allocations
func (r *PaymentRepository) GetPaymentByID(paymentID int) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.QueryRow(
		`SELECT id, pledge_id, amount, currency, amount_usd, exchange_rate,
			payment_date, received_date, payment_method, method_detail, account,
			check_date, check_number, payment_status, installment_schedule_id,
			solicitor_id, bonus_percentage, bonus_amount, bonus_rule_id,
			notes, is_third_party, payer_contact_id, third_party_contact_id, batch_id, created_at
		 FROM payments WHERE id = $1`,
		paymentID,
	).Scan(
		&payment.ID, &payment.PledgeID, &payment.Amount, &payment.Currency,
		&payment.AmountUSD, &payment.ExchangeRate, &payment.PaymentDate,
		&payment.ReceivedDate, &payment.PaymentMethod, &payment.MethodDetail,
		&payment.Account, &payment.CheckDate, &payment.CheckNumber,
		&payment.PaymentStatus, &payment.InstallmentScheduleID, &payment.SolicitorID,
		&payment.BonusPercentage, &payment.BonusAmount, &payment.BonusRuleID,
		&payment.Notes, &payment.IsThirdParty, &payment.PayerContactID,
		&payment.ThirdPartyContactID, &payment.BatchID, &payment.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("payment not found")
		}
		return nil, fmt.Errorf("failed to get payment: %v", err)
	}
	allocations, err := r.getAllocations(payment.ID)
	if err != nil {
		return nil, err
	}
	payment.Allocations = allocations

	return &payment, nil
}

// ListPaymentsByContact retrieves all payments touching a contact's
// pledges, newest first. Both direct pledge payments and split
// allocations count.
func (r *PaymentRepository) ListPaymentsByContact(contactID int) ([]models.Payment, error) {
	rows, err := r.db.Query(
		`SELECT DISTINCT p.id
		 FROM payments p
		 LEFT JOIN payment_allocations a ON a.payment_id = p.id
		 LEFT JOIN pledges dp ON dp.id = p.pledge_id
		 LEFT JOIN pledges ap ON ap.id = a.pledge_id
		 WHERE dp.contact_id = $1 OR ap.contact_id = $1
		 ORDER BY p.id DESC`,
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %v", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan payment id: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var payments []models.Payment
	for _, id := range ids {
		payment, err := r.GetPaymentByID(id)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}

	return payments, nil
}

// DeletePayment deletes a payment and its allocations by ID
func (r *PaymentRepository) DeletePayment(paymentID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM payment_allocations WHERE payment_id = $1", paymentID); err != nil {
		return fmt.Errorf("failed to delete allocations: %v", err)
	}
	if _, err := tx.Exec("DELETE FROM payments WHERE id = $1", paymentID); err != nil {
		return fmt.Errorf("failed to delete payment: %v", err)
	}

	return tx.Commit()
}

// getAllocations retrieves the allocation rows for a payment
func (r *PaymentRepository) getAllocations(paymentID int) ([]models.Allocation, error) {
	rows, err := r.db.Query(
		`SELECT id, payment_id, pledge_id, amount, amount_in_pledge_currency,
			installment_schedule_id, receipt_number, receipt_type, receipt_issued, notes
		 FROM payment_allocations WHERE payment_id = $1 ORDER BY id`,
		paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %v", err)
	}
	defer rows.Close()

	var allocations []models.Allocation
	for rows.Next() {
		var a models.Allocation
		if err := rows.Scan(&a.ID, &a.PaymentID, &a.PledgeID, &a.Amount,
			&a.AmountInPledgeCurrency, &a.InstallmentScheduleID, &a.ReceiptNumber,
			&a.ReceiptType, &a.ReceiptIssued, &a.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %v", err)
		}
		allocations = append(allocations, a)
	}

	return allocations, rows.Err()
}
