package handler

import (
	"net/http"
	"time"

	"work-ledger/internal/logger"
	"work-ledger/internal/model"
	"work-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type TimecardHandler struct {
	timecard *service.TimecardService
}

func NewTimecardHandler(timecard *service.TimecardService) *TimecardHandler {
	return &TimecardHandler{timecard: timecard}
}

// GET /api/timecard?date=2026-08-30
func (h *TimecardHandler) Get(c *gin.Context) {
	uid := c.GetInt("employee_id")
	date := dateOrToday(c.Query("date"))
	rec, err := h.timecard.Get(c.Request.Context(), uid, date)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"clock_record": nil, "date": date})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clock_record": rec, "date": date})
}

type clockAction func(c *gin.Context, uid int, date, hhmm string) (*model.ClockRecord, error)

func (h *TimecardHandler) clock(c *gin.Context, name string, fn clockAction) {
	var req model.ClockActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetInt("employee_id")
	date := dateOrToday(req.Date)
	hhmm := req.Time
	if hhmm == "" {
		hhmm = time.Now().Format("15:04")
	}

	rec, err := fn(c, uid, date, hhmm)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	logger.Info("timecard."+name, "uid", uid, "date", date, "time", hhmm)
	c.JSON(http.StatusOK, rec)
}

// POST /api/timecard/clock-in
func (h *TimecardHandler) ClockIn(c *gin.Context) {
	h.clock(c, "clock_in", func(c *gin.Context, uid int, date, hhmm string) (*model.ClockRecord, error) {
		return h.timecard.ClockIn(c.Request.Context(), uid, date, hhmm)
	})
}

// POST /api/timecard/clock-out
func (h *TimecardHandler) ClockOut(c *gin.Context) {
	h.clock(c, "clock_out", func(c *gin.Context, uid int, date, hhmm string) (*model.ClockRecord, error) {
		return h.timecard.ClockOut(c.Request.Context(), uid, date, hhmm)
	})
}

// POST /api/timecard/lunch-out
func (h *TimecardHandler) LunchOut(c *gin.Context) {
	h.clock(c, "lunch_out", func(c *gin.Context, uid int, date, hhmm string) (*model.ClockRecord, error) {
		return h.timecard.LunchOut(c.Request.Context(), uid, date, hhmm)
	})
}

// POST /api/timecard/lunch-in
func (h *TimecardHandler) LunchIn(c *gin.Context) {
	h.clock(c, "lunch_in", func(c *gin.Context, uid int, date, hhmm string) (*model.ClockRecord, error) {
		return h.timecard.LunchIn(c.Request.Context(), uid, date, hhmm)
	})
}

// POST /api/timecard/break-out
func (h *TimecardHandler) BreakOut(c *gin.Context) {
	h.clock(c, "break_out", func(c *gin.Context, uid int, date, hhmm string) (*model.ClockRecord, error) {
		return h.timecard.BreakOut(c.Request.Context(), uid, date, hhmm)
	})
}

// POST /api/timecard/break-in
func (h *TimecardHandler) BreakIn(c *gin.Context) {
	h.clock(c, "break_in", func(c *gin.Context, uid int, date, hhmm string) (*model.ClockRecord, error) {
		return h.timecard.BreakIn(c.Request.Context(), uid, date, hhmm)
	})
}

// PUT /api/timecard/permission
func (h *TimecardHandler) SetPermission(c *gin.Context) {
	var req model.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetInt("employee_id")
	date := dateOrToday(req.Date)
	rec, err := h.timecard.SetPermission(c.Request.Context(), uid, date, req.Minutes, req.Locked)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	logger.Info("timecard.permission", "uid", uid, "date", date, "minutes", req.Minutes, "locked", req.Locked)
	c.JSON(http.StatusOK, rec)
}

func dateOrToday(date string) string {
	if date != "" {
		return date
	}
	return time.Now().Format("2006-01-02")
}
