package service

import (
	"context"
	"fmt"

	"work-ledger/internal/engine"
	"work-ledger/internal/model"

	"gorm.io/gorm"
)

// AccountingService computes the on-demand daily summary and the batch
// attendance classification. It holds no state of its own: every summary
// is recomputed from the current clock record and task log.
type AccountingService struct {
	db         *gorm.DB
	timecard   *TimecardService
	tasklog    *TaskLogService
	rules      engine.Rules
	thresholds engine.Thresholds
}

func NewAccountingService(db *gorm.DB, timecard *TimecardService, tasklog *TaskLogService, rules engine.Rules, thresholds engine.Thresholds) *AccountingService {
	return &AccountingService{db: db, timecard: timecard, tasklog: tasklog, rules: rules, thresholds: thresholds}
}

// Summary reconciles the day's clock event with its task log. The caller
// supplies now (minute of day) so that an in-progress day accounts up to
// the current minute.
func (s *AccountingService) Summary(ctx context.Context, employeeID int, date string, now int) (engine.Summary, error) {
	clockRec, err := s.timecard.Get(ctx, employeeID, date)
	if err != nil {
		return engine.Summary{}, err
	}
	logRec, err := s.tasklog.Get(ctx, employeeID, date)
	if err != nil {
		return engine.Summary{}, err
	}

	gaps := engine.DetectGaps(logRec.Entries)
	return engine.ComputeSummary(clockRec.Event(), logRec.Entries, gaps, now, s.rules)
}

// ClassifyDay maps one employee day to its attendance status.
func (s *AccountingService) ClassifyDay(ctx context.Context, employeeID int, date string, dayClosed, weekend bool, now int) (engine.DayStatus, engine.Summary, error) {
	clockRec, err := s.timecard.Get(ctx, employeeID, date)
	if err != nil {
		return "", engine.Summary{}, err
	}
	summary, err := s.Summary(ctx, employeeID, date, now)
	if err != nil {
		return "", engine.Summary{}, err
	}

	facts := engine.DayFacts{
		HasClockEvent:    clockRec != nil,
		DayClosed:        dayClosed,
		Weekend:          weekend,
		TotalWorkMinutes: summary.TotalWorkMinutes,
	}
	if clockRec != nil {
		facts.HasLogin = clockRec.LoginTime != ""
		facts.HasLogout = clockRec.LogoutTime != ""
	}
	return engine.ClassifyDay(facts, s.thresholds), summary, nil
}

// RecordDay classifies a closed day and upserts its attendance row. Used
// by the end-of-day batch.
func (s *AccountingService) RecordDay(ctx context.Context, employeeID int, date string, weekend bool) (*model.AttendanceDay, error) {
	status, summary, err := s.ClassifyDay(ctx, employeeID, date, true, weekend, 24*60)
	if err != nil {
		return nil, err
	}

	var existing model.AttendanceDay
	err = s.db.WithContext(ctx).
		Where("employee_id = ? AND work_date = ?", employeeID, date).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		day := &model.AttendanceDay{
			EmployeeID:       employeeID,
			WorkDate:         date,
			Status:           status,
			TotalWorkMinutes: summary.TotalWorkMinutes,
		}
		if err := s.db.WithContext(ctx).Create(day).Error; err != nil {
			return nil, fmt.Errorf("insert attendance day: %w", err)
		}
		return day, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query attendance day: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"status":             string(status),
		"total_work_minutes": summary.TotalWorkMinutes,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update attendance day: %w", err)
	}
	existing.Status = status
	existing.TotalWorkMinutes = summary.TotalWorkMinutes
	return &existing, nil
}

// Attendance returns the stored attendance row for a day, or nil when the
// batch has not run for it yet.
func (s *AccountingService) Attendance(ctx context.Context, employeeID int, date string) (*model.AttendanceDay, error) {
	var day model.AttendanceDay
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND work_date = ?", employeeID, date).
		First(&day).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query attendance day: %w", err)
	}
	return &day, nil
}

// Employees lists all employees, for the batch classifier.
func (s *AccountingService) Employees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := s.db.WithContext(ctx).Order("id").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	return employees, nil
}
