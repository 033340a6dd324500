package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/expertdev121/pledges-backend/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles Excel export requests
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportContactPayments handles GET /reports/payments/:contactId
func (h *ReportHandler) ExportContactPayments(c *gin.Context) {
	contactID, err := strconv.Atoi(c.Param("contactId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	excelFile, filename, err := h.reportService.ExportContactPayments(contactID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export payments: " + err.Error()})
		return
	}

	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	// Write Excel file to response
	if err := excelFile.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file: " + err.Error()})
		return
	}
}
