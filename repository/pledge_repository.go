// repository/pledge_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/expertdev121/pledges-backend/models"
	"github.com/expertdev121/pledges-backend/utils"
)

// PledgeRepository handles read-only pledge and contact lookups. The
// payment engine never mutates pledges or contacts through this type.
type PledgeRepository struct {
	db *sql.DB
}

// NewPledgeRepository creates a new PledgeRepository
func NewPledgeRepository(db *sql.DB) *PledgeRepository {
	return &PledgeRepository{db: db}
}

// GetPledgeByID retrieves a pledge by its ID
func (r *PledgeRepository) GetPledgeByID(pledgeID int) (*models.Pledge, error) {
	var pledge models.Pledge
	err := r.db.QueryRow(
		`SELECT id, contact_id, currency, original_amount, balance, description, created_at
		 FROM pledges WHERE id = $1`,
		pledgeID,
	).Scan(&pledge.ID, &pledge.ContactID, &pledge.Currency, &pledge.OriginalAmount,
		&pledge.Balance, &pledge.Description, &pledge.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pledge not found")
		}
		return nil, fmt.Errorf("failed to get pledge: %v", err)
	}

	return &pledge, nil
}

// GetPledgesByIDs retrieves a set of pledges keyed by ID
func (r *PledgeRepository) GetPledgesByIDs(pledgeIDs []int) (map[int]*models.Pledge, error) {
	pledges := make(map[int]*models.Pledge, len(pledgeIDs))
	for _, id := range pledgeIDs {
		if _, seen := pledges[id]; seen {
			continue
		}
		pledge, err := r.GetPledgeByID(id)
		if err != nil {
			return nil, err
		}
		pledges[id] = pledge
	}
	return pledges, nil
}

// ListOpenPledgesByContact retrieves pledges with an outstanding balance
// for one contact, newest first, for allocation pickers.
func (r *PledgeRepository) ListOpenPledgesByContact(contactID int) ([]models.PledgeSummary, error) {
	rows, err := r.db.Query(
		`SELECT p.id, p.contact_id, c.first_name, c.last_name, p.currency, p.balance, p.description
		 FROM pledges p
		 JOIN contacts c ON c.id = p.contact_id
		 WHERE p.contact_id = $1 AND p.balance > 0
		 ORDER BY p.created_at DESC`,
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pledges: %v", err)
	}
	defer rows.Close()

	var summaries []models.PledgeSummary
	for rows.Next() {
		var s models.PledgeSummary
		var firstName, lastName string
		if err := rows.Scan(&s.ID, &s.ContactID, &firstName, &lastName,
			&s.Currency, &s.Balance, &s.Description); err != nil {
			return nil, fmt.Errorf("failed to scan pledge: %v", err)
		}
		s.ContactName = utils.FormatContactName(firstName, lastName)
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// GetContactName retrieves a contact's display name
func (r *PledgeRepository) GetContactName(contactID int) (string, error) {
	var firstName, lastName string
	err := r.db.QueryRow(
		"SELECT first_name, last_name FROM contacts WHERE id = $1",
		contactID,
	).Scan(&firstName, &lastName)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("contact not found")
		}
		return "", fmt.Errorf("failed to get contact: %v", err)
	}

	return utils.FormatContactName(firstName, lastName), nil
}
