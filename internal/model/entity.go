package model

import (
	"time"

	"work-ledger/internal/engine"
)

type Employee struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Team     string `json:"team"`
}

// ClockRecord is one employee's raw clock data for one day. It is created
// at first clock-in and edited throughout the day, never deleted.
type ClockRecord struct {
	ID                int                  `gorm:"primaryKey" json:"id"`
	EmployeeID        int                  `gorm:"uniqueIndex:uk_clock_emp_date" json:"employee_id"`
	WorkDate          string               `gorm:"type:date;uniqueIndex:uk_clock_emp_date" json:"work_date"`
	LoginTime         string               `json:"login_time"`
	LogoutTime        string               `json:"logout_time"`
	LunchOut          string               `json:"lunch_out"`
	LunchIn           string               `json:"lunch_in"`
	Breaks            []engine.BreakWindow `gorm:"serializer:json;type:json" json:"breaks"`
	PermissionMinutes int                  `json:"permission_minutes"`
	PermissionLocked  bool                 `json:"permission_locked"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// Event projects the row into the engine's read-only clock event view.
func (r *ClockRecord) Event() engine.ClockEvent {
	if r == nil {
		return engine.ClockEvent{}
	}
	return engine.ClockEvent{
		EmployeeID:        r.EmployeeID,
		Date:              r.WorkDate,
		Login:             r.LoginTime,
		Logout:            r.LogoutTime,
		LunchOut:          r.LunchOut,
		LunchIn:           r.LunchIn,
		Breaks:            r.Breaks,
		PermissionMinutes: r.PermissionMinutes,
		PermissionLocked:  r.PermissionLocked,
	}
}

// TaskLogRecord stores the day's task entry sequence. Version backs the
// optimistic compare-and-swap at the persistence boundary.
type TaskLogRecord struct {
	ID         int                `gorm:"primaryKey" json:"id"`
	EmployeeID int                `gorm:"uniqueIndex:uk_log_emp_date" json:"employee_id"`
	WorkDate   string             `gorm:"type:date;uniqueIndex:uk_log_emp_date" json:"work_date"`
	Entries    []engine.TaskEntry `gorm:"serializer:json;type:json" json:"entries"`
	State      string             `json:"state"`
	Version    int                `json:"version"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// Log projects the row into the engine's immutable task log value.
func (r *TaskLogRecord) Log() engine.TaskLog {
	if r == nil {
		return engine.TaskLog{}
	}
	return engine.TaskLog{EmployeeID: r.EmployeeID, Date: r.WorkDate, Entries: r.Entries}
}

// AttendanceDay is the batch classifier's per-day output row.
type AttendanceDay struct {
	ID               int              `gorm:"primaryKey" json:"id"`
	EmployeeID       int              `gorm:"uniqueIndex:uk_att_emp_date" json:"employee_id"`
	WorkDate         string           `gorm:"type:date;uniqueIndex:uk_att_emp_date" json:"work_date"`
	Status           engine.DayStatus `json:"status"`
	TotalWorkMinutes int              `json:"total_work_minutes"`
	CreatedAt        time.Time        `json:"created_at"`
}

func (Employee) TableName() string      { return "employees" }
func (ClockRecord) TableName() string   { return "clock_records" }
func (TaskLogRecord) TableName() string { return "task_logs" }
func (AttendanceDay) TableName() string { return "attendance_days" }
