package handlers

import (
	"github.com/expertdev121/pledges-backend/models"
	"github.com/expertdev121/pledges-backend/repository"
	"github.com/expertdev121/pledges-backend/utils"

	"github.com/gin-gonic/gin"
)

// PledgeHandler handles read-only pledge lookups used to populate
// allocation pickers
type PledgeHandler struct {
	pledgeRepo *repository.PledgeRepository
}

// NewPledgeHandler creates a new pledge handler
func NewPledgeHandler(pledgeRepo *repository.PledgeRepository) *PledgeHandler {
	return &PledgeHandler{pledgeRepo: pledgeRepo}
}

// ListByContact handles POST /pledges/listByContact
func (h *PledgeHandler) ListByContact(c *gin.Context) {
	var request models.ListPledgesRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	pledges, err := h.pledgeRepo.ListOpenPledgesByContact(request.ContactID)
	if err != nil {
		utils.HandleError(c, utils.NewInternalError(utils.ErrFailedToRetrieve))
		return
	}

	utils.HandleSuccess(c, pledges)
}
