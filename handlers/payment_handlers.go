package handlers

import (
	"net/http"

	"github.com/expertdev121/pledges-backend/models"
	"github.com/expertdev121/pledges-backend/repository"
	"github.com/expertdev121/pledges-backend/services"
	"github.com/expertdev121/pledges-backend/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *services.PaymentService
	paymentRepo    *repository.PaymentRepository
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, paymentRepo *repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		paymentRepo:    paymentRepo,
	}
}

// CreatePayment handles POST /payments/create for simple, split and
// third-party payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var request models.CreatePaymentRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	payment, warnings, err := h.paymentService.CreatePayment(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":  payment,
		"warnings": warnings,
	})
}

// CreateBatch handles POST /payments/createBatch: a multi-contact payment
// fanned out into independent per-contact submissions. Partial failure is
// reported in the body, not as an HTTP error.
func (h *PaymentHandler) CreateBatch(c *gin.Context) {
	var request models.CreateBatchRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	result, err := h.paymentService.CreateBatch(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, result)
}

// Preview handles POST /payments/preview: derives all computed fields
// for an in-progress form without persisting anything
func (h *PaymentHandler) Preview(c *gin.Context) {
	var request models.CreatePaymentRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	preview, err := h.paymentService.Preview(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, preview)
}

// ListByContact handles POST /payments/listByContact
func (h *PaymentHandler) ListByContact(c *gin.Context) {
	var request models.ListPaymentsRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	payments, err := h.paymentRepo.ListPaymentsByContact(request.ContactID)
	if err != nil {
		utils.HandleError(c, utils.NewInternalError(utils.ErrFailedToRetrieve))
		return
	}

	utils.HandleSuccess(c, payments)
}

// RemovePayment handles POST /payments/remove
func (h *PaymentHandler) RemovePayment(c *gin.Context) {
	var request models.RemovePaymentRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	if _, err := h.paymentRepo.GetPaymentByID(request.PaymentID); err != nil {
		utils.HandleError(c, utils.NewNotFoundError("Payment"))
		return
	}

	if err := h.paymentRepo.DeletePayment(request.PaymentID); err != nil {
		utils.HandleError(c, utils.NewInternalError("Failed to delete payment"))
		return
	}

	utils.HandleSuccess(c, true)
}
