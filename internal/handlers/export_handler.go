package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/services"
)

// ExportHandler hands the export inputs to document writers.
type ExportHandler struct {
	exportService services.ExportServicer
	auditService  services.AuditServicer
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService services.ExportServicer, auditService services.AuditServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService, auditService: auditService}
}

// ExportRecords returns the spreadsheet rows of the active date range
// @Summary     Export records
// @Description One flat row per transaction in the active date range plus the summary metrics
// @Tags        export
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ExportWorkbook "Workbook data"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/records [get]
func (h *ExportHandler) ExportRecords(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workbook, err := h.exportService.ExportRecords(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "EXPORT_RECORDS", "export", "", c.ClientIP(),
		map[string]interface{}{"rows": len(workbook.Transactions)})

	c.JSON(http.StatusOK, workbook)
}

// ExportReport returns the document report of the active date range
// @Summary     Export report
// @Description Summary and at most 50 transaction rows of the active date range
// @Tags        export
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.Report "Report data"
// @Failure     401 {object} ErrorResponse "Unauthorized or session ended"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/report [get]
func (h *ExportHandler) ExportReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.exportService.ExportReport(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "EXPORT_REPORT", "export", "", c.ClientIP(),
		map[string]interface{}{"rows": len(report.Rows), "total_rows": report.TotalRows})

	c.JSON(http.StatusOK, report)
}
