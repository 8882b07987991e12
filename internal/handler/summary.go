package handler

import (
	"net/http"
	"time"

	"work-ledger/internal/engine"
	"work-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	accounting *service.AccountingService
}

func NewSummaryHandler(accounting *service.AccountingService) *SummaryHandler {
	return &SummaryHandler{accounting: accounting}
}

// GET /api/summary?date=2026-08-30
func (h *SummaryHandler) Summary(c *gin.Context) {
	uid := c.GetInt("employee_id")
	date := dateOrToday(c.Query("date"))

	summary, err := h.accounting.Summary(c.Request.Context(), uid, date, engine.MinuteOf(time.Now()))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /api/attendance?date=2026-08-30
func (h *SummaryHandler) Attendance(c *gin.Context) {
	uid := c.GetInt("employee_id")
	date := dateOrToday(c.Query("date"))

	day, err := h.accounting.Attendance(c.Request.Context(), uid, date)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	if day != nil {
		c.JSON(http.StatusOK, day)
		return
	}

	// Not yet classified by the batch: classify the open day live.
	status, summary, err := h.accounting.ClassifyDay(c.Request.Context(), uid, date,
		date != time.Now().Format("2006-01-02"), false, engine.MinuteOf(time.Now()))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"employee_id":        uid,
		"work_date":          date,
		"status":             status,
		"total_work_minutes": summary.TotalWorkMinutes,
		"provisional":        true,
	})
}
