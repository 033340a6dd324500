package services

import (
	"fmt"
	"time"

	"github.com/expertdev121/pledges-backend/models"
	"github.com/expertdev121/pledges-backend/repository"
	"github.com/expertdev121/pledges-backend/utils"
	"github.com/xuri/excelize/v2"
)

// ReportService handles Excel export of a contact's pledges and payments
type ReportService struct {
	paymentRepo *repository.PaymentRepository
	pledgeRepo  *repository.PledgeRepository
}

// NewReportService creates a new report service
func NewReportService(paymentRepo *repository.PaymentRepository, pledgeRepo *repository.PledgeRepository) *ReportService {
	return &ReportService{
		paymentRepo: paymentRepo,
		pledgeRepo:  pledgeRepo,
	}
}

// ExportContactPayments generates an Excel workbook for one contact:
// pledge summary, payment history, and allocation lines.
func (s *ReportService) ExportContactPayments(contactID int) (*excelize.File, string, error) {
	contactName, err := s.pledgeRepo.GetContactName(contactID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get contact: %v", err)
	}

	pledges, err := s.pledgeRepo.ListOpenPledgesByContact(contactID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get pledges: %v", err)
	}

	payments, err := s.paymentRepo.ListPaymentsByContact(contactID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get payments: %v", err)
	}

	f := excelize.NewFile()

	if err := s.createPledgeSheet(f, contactName, pledges); err != nil {
		return nil, "", fmt.Errorf("failed to create pledge sheet: %v", err)
	}
	if err := s.createPaymentSheet(f, payments); err != nil {
		return nil, "", fmt.Errorf("failed to create payment sheet: %v", err)
	}
	if err := s.createAllocationSheet(f, payments); err != nil {
		return nil, "", fmt.Errorf("failed to create allocation sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Payments_%s.xlsx",
		utils.CleanFileName(contactName),
		time.Now().Format(utils.DateFormat))

	return f, filename, nil
}

// createPledgeSheet creates Sheet 1: open pledges and balances
func (s *ReportService) createPledgeSheet(f *excelize.File, contactName string, pledges []models.PledgeSummary) error {
	sheetName := "Pledges"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Pledges for %s", contactName))

	headers := []string{"Pledge ID", "Description", "Currency", "Outstanding Balance"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheetName, cell, header)
	}

	row := 4
	for _, pledge := range pledges {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), pledge.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), pledge.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), pledge.Currency)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), pledge.Balance)
		row++
	}

	return nil
}

// createPaymentSheet creates Sheet 2: payment history
func (s *ReportService) createPaymentSheet(f *excelize.File, payments []models.Payment) error {
	sheetName := "Payments"
	f.NewSheet(sheetName)

	headers := []string{"Date", "Amount", "Currency", "Amount USD", "Exchange Rate",
		"Method", "Status", "Third Party", "Bonus Amount", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	row := 2
	for _, payment := range payments {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), payment.PaymentDate)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), payment.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), payment.Currency)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), payment.AmountUSD)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), payment.ExchangeRate)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), payment.PaymentMethod)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), payment.PaymentStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), payment.IsThirdParty)
		if payment.BonusAmount != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), *payment.BonusAmount)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), payment.Notes)
		row++
	}

	return nil
}

// createAllocationSheet creates Sheet 3: allocation lines per payment
func (s *ReportService) createAllocationSheet(f *excelize.File, payments []models.Payment) error {
	sheetName := "Allocations"
	f.NewSheet(sheetName)

	headers := []string{"Payment ID", "Pledge ID", "Amount", "Amount (Pledge Currency)",
		"Receipt Number", "Receipt Type", "Receipt Issued", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	row := 2
	for _, payment := range payments {
		for _, alloc := range payment.Allocations {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), alloc.PaymentID)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), alloc.PledgeID)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), alloc.Amount)
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), alloc.AmountInPledgeCurrency)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), alloc.ReceiptNumber)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), alloc.ReceiptType)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), alloc.ReceiptIssued)
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), alloc.Notes)
			row++
		}
	}

	return nil
}
