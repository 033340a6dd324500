package handlers

import (
	"time"

	"github.com/expertdev121/pledges-backend/models"
	"github.com/expertdev121/pledges-backend/repository"
	"github.com/expertdev121/pledges-backend/services"
	"github.com/expertdev121/pledges-backend/utils"

	"github.com/gin-gonic/gin"
)

// RateHandler handles exchange rate HTTP requests
type RateHandler struct {
	rateService *services.RateService
	rateRepo    *repository.RateRepository
}

// NewRateHandler creates a new rate handler
func NewRateHandler(rateService *services.RateService, rateRepo *repository.RateRepository) *RateHandler {
	return &RateHandler{
		rateService: rateService,
		rateRepo:    rateRepo,
	}
}

// GetRates handles POST /rates/get. Date defaults to today when omitted.
func (h *RateHandler) GetRates(c *gin.Context) {
	var request models.GetRatesRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	asOf, err := parseOptionalDate(request.Date)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	rates, err := h.rateRepo.GetRatesForDate(asOf)
	if err != nil {
		utils.HandleError(c, utils.NewInternalError(utils.ErrFailedToRetrieve))
		return
	}

	utils.HandleSuccess(c, rates)
}

// Convert handles POST /rates/convert, the form display helper
func (h *RateHandler) Convert(c *gin.Context) {
	var request models.ConvertRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	if err := utils.ValidateCurrency(request.FromCurrency); err != nil {
		utils.HandleError(c, err)
		return
	}
	if err := utils.ValidateCurrency(request.ToCurrency); err != nil {
		utils.HandleError(c, err)
		return
	}

	asOf, err := parseOptionalDate(request.Date)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	converted, warnings, err := h.rateService.Convert(request.Amount, request.FromCurrency, request.ToCurrency, asOf)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.ConvertResponse{
		Amount:    request.Amount,
		Converted: converted,
		Warnings:  warnings,
	})
}

// parseOptionalDate parses a wire-format date, defaulting to today
func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	return utils.ValidateDate(value, "date")
}
