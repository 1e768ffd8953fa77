package handler

import (
	"net/http"

	"qrmenu/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Monthly(c *gin.Context) {
	report, err := h.reports.Monthly(c.Query("month"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"report": report})
}

func (h *ReportHandler) Daily(c *gin.Context) {
	report, err := h.reports.Daily(c.Query("date"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"report": report})
}

func (h *ReportHandler) TodayTransactions(c *gin.Context) {
	transactions, err := h.reports.TodayTransactions()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"transactions": transactions})
}
