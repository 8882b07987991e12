package handler

import (
	"net/http"
	"strconv"
	"time"

	"work-ledger/internal/engine"
	"work-ledger/internal/logger"
	"work-ledger/internal/model"
	"work-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskLogHandler struct {
	tasklog  *service.TaskLogService
	timecard *service.TimecardService
}

func NewTaskLogHandler(tasklog *service.TaskLogService, timecard *service.TimecardService) *TaskLogHandler {
	return &TaskLogHandler{tasklog: tasklog, timecard: timecard}
}

// GET /api/tasklog?date=2026-08-30
func (h *TaskLogHandler) Get(c *gin.Context) {
	uid := c.GetInt("employee_id")
	date := dateOrToday(c.Query("date"))
	rec, err := h.tasklog.Get(c.Request.Context(), uid, date)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/tasklog/entries
func (h *TaskLogHandler) AddEntry(c *gin.Context) {
	var req model.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetInt("employee_id")
	date := dateOrToday(req.Date)

	clockRec, err := h.timecard.Get(c.Request.Context(), uid, date)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	rec, err := h.tasklog.AddEntry(c.Request.Context(), uid, date, clockRec.Event(), engine.MinuteOf(time.Now()), req.Details)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	logger.Info("tasklog.add", "uid", uid, "date", date, "entries", len(rec.Entries))
	c.JSON(http.StatusOK, rec)
}

// PUT /api/tasklog/entries/:index
func (h *TaskLogHandler) UpdateEntry(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	var req model.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetInt("employee_id")
	date := dateOrToday(req.Date)

	rec, err := h.tasklog.UpdateEntry(c.Request.Context(), uid, date,
		engine.MinuteOf(time.Now()), index, engine.Field(req.Field), req.Value)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	logger.Info("tasklog.update", "uid", uid, "date", date, "index", index, "field", req.Field)
	c.JSON(http.StatusOK, rec)
}

// DELETE /api/tasklog/entries/:index?date=2026-08-30
func (h *TaskLogHandler) DeleteEntry(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	uid := c.GetInt("employee_id")
	date := dateOrToday(c.Query("date"))

	rec, err := h.tasklog.DeleteEntry(c.Request.Context(), uid, date, index)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	logger.Info("tasklog.delete", "uid", uid, "date", date, "index", index)
	c.JSON(http.StatusOK, rec)
}

// POST /api/tasklog/save
func (h *TaskLogHandler) Save(c *gin.Context) {
	var req model.SaveLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetInt("employee_id")
	date := dateOrToday(req.Date)

	rec, err := h.tasklog.Save(c.Request.Context(), uid, date, engine.MinuteOf(time.Now()))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	logger.Info("tasklog.save", "uid", uid, "date", date, "state", rec.State)
	c.JSON(http.StatusOK, rec)
}
