package service

import (
	"context"
	"fmt"

	"work-ledger/internal/engine"
	"work-ledger/internal/model"

	"gorm.io/gorm"
)

// TimecardService owns the day's clock record: clock-in/out, lunch, breaks
// and permission grants. The accounting engine only ever sees the record
// through its read-only ClockEvent projection.
type TimecardService struct{ db *gorm.DB }

func NewTimecardService(db *gorm.DB) *TimecardService { return &TimecardService{db: db} }

// Get returns the day's clock record, or nil when the employee has not
// clocked in yet.
func (s *TimecardService) Get(ctx context.Context, employeeID int, date string) (*model.ClockRecord, error) {
	var rec model.ClockRecord
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND work_date = ?", employeeID, date).
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query clock record: %w", err)
	}
	return &rec, nil
}

func (s *TimecardService) getOrCreate(ctx context.Context, employeeID int, date string) (*model.ClockRecord, error) {
	rec, err := s.Get(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	rec = &model.ClockRecord{EmployeeID: employeeID, WorkDate: date}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create clock record: %w", err)
	}
	return rec, nil
}

func (s *TimecardService) setTime(ctx context.Context, employeeID int, date, column, hhmm string) (*model.ClockRecord, error) {
	if _, ok, err := engine.ToMinutes(hhmm); err != nil || !ok {
		if err == nil {
			err = &engine.InvalidTimeFormatError{Value: hhmm}
		}
		return nil, err
	}
	rec, err := s.getOrCreate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(rec).Update(column, hhmm).Error; err != nil {
		return nil, fmt.Errorf("update clock record: %w", err)
	}
	return s.Get(ctx, employeeID, date)
}

func (s *TimecardService) ClockIn(ctx context.Context, employeeID int, date, hhmm string) (*model.ClockRecord, error) {
	return s.setTime(ctx, employeeID, date, "login_time", hhmm)
}

func (s *TimecardService) ClockOut(ctx context.Context, employeeID int, date, hhmm string) (*model.ClockRecord, error) {
	return s.setTime(ctx, employeeID, date, "logout_time", hhmm)
}

func (s *TimecardService) LunchOut(ctx context.Context, employeeID int, date, hhmm string) (*model.ClockRecord, error) {
	return s.setTime(ctx, employeeID, date, "lunch_out", hhmm)
}

func (s *TimecardService) LunchIn(ctx context.Context, employeeID int, date, hhmm string) (*model.ClockRecord, error) {
	return s.setTime(ctx, employeeID, date, "lunch_in", hhmm)
}

// BreakOut opens a new break window. An already-open window is reused so a
// double tap does not stack breaks.
func (s *TimecardService) BreakOut(ctx context.Context, employeeID int, date, hhmm string) (*model.ClockRecord, error) {
	if _, ok, err := engine.ToMinutes(hhmm); err != nil || !ok {
		if err == nil {
			err = &engine.InvalidTimeFormatError{Value: hhmm}
		}
		return nil, err
	}
	rec, err := s.getOrCreate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	breaks := rec.Breaks
	if n := len(breaks); n > 0 && breaks[n-1].In == "" {
		breaks[n-1].Out = hhmm
	} else {
		breaks = append(breaks, engine.BreakWindow{Out: hhmm})
	}
	return s.saveBreaks(ctx, rec, breaks)
}

// BreakIn closes the open break window.
func (s *TimecardService) BreakIn(ctx context.Context, employeeID int, date, hhmm string) (*model.ClockRecord, error) {
	if _, ok, err := engine.ToMinutes(hhmm); err != nil || !ok {
		if err == nil {
			err = &engine.InvalidTimeFormatError{Value: hhmm}
		}
		return nil, err
	}
	rec, err := s.getOrCreate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	breaks := rec.Breaks
	if n := len(breaks); n == 0 || breaks[n-1].In != "" {
		return nil, fmt.Errorf("no open break to close")
	}
	breaks[len(breaks)-1].In = hhmm
	return s.saveBreaks(ctx, rec, breaks)
}

func (s *TimecardService) saveBreaks(ctx context.Context, rec *model.ClockRecord, breaks []engine.BreakWindow) (*model.ClockRecord, error) {
	rec.Breaks = breaks
	if err := s.db.WithContext(ctx).Model(rec).Select("breaks").Updates(rec).Error; err != nil {
		return nil, fmt.Errorf("update breaks: %w", err)
	}
	return rec, nil
}

// SetPermission records a permission grant. Locking it releases the task
// log append block.
func (s *TimecardService) SetPermission(ctx context.Context, employeeID int, date string, minutes int, locked bool) (*model.ClockRecord, error) {
	if minutes < 0 {
		return nil, fmt.Errorf("permission minutes must not be negative")
	}
	rec, err := s.getOrCreate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(rec).Updates(map[string]interface{}{
		"permission_minutes": minutes,
		"permission_locked":  locked,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update permission: %w", err)
	}
	rec.PermissionMinutes = minutes
	rec.PermissionLocked = locked
	return rec, nil
}
