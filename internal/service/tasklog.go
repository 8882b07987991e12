package service

import (
	"context"
	"errors"
	"fmt"

	"work-ledger/internal/engine"
	"work-ledger/internal/logger"
	"work-ledger/internal/model"

	"gorm.io/gorm"
)

// TaskLogService is the durable side of the task log: it loads the day's
// row, applies one pure engine operation, and commits the result with an
// optimistic version check. A commit that loses the version race is
// retried once against a fresh row before ErrStaleData surfaces.
type TaskLogService struct {
	db    *gorm.DB
	rules engine.Rules
}

func NewTaskLogService(db *gorm.DB, rules engine.Rules) *TaskLogService {
	return &TaskLogService{db: db, rules: rules}
}

// Get returns the day's log row, or an empty unsaved row when the employee
// has not logged anything yet.
func (s *TaskLogService) Get(ctx context.Context, employeeID int, date string) (*model.TaskLogRecord, error) {
	var rec model.TaskLogRecord
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND work_date = ?", employeeID, date).
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return &model.TaskLogRecord{EmployeeID: employeeID, WorkDate: date, State: string(engine.StateDraft)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query task log: %w", err)
	}
	return &rec, nil
}

type logOp func(engine.TaskLog) (engine.TaskLog, error)

func (s *TaskLogService) apply(ctx context.Context, employeeID int, date string, op logOp) (*model.TaskLogRecord, error) {
	for attempt := 0; ; attempt++ {
		rec, err := s.Get(ctx, employeeID, date)
		if err != nil {
			return nil, err
		}
		next, err := op(rec.Log())
		if err != nil {
			return nil, err
		}
		committed, err := s.commit(ctx, rec, next)
		if errors.Is(err, engine.ErrStaleData) && attempt == 0 {
			logger.Warn("task log commit lost version race, retrying",
				"employee_id", employeeID, "date", date)
			continue
		}
		if err != nil {
			return nil, err
		}
		return committed, nil
	}
}

func (s *TaskLogService) commit(ctx context.Context, rec *model.TaskLogRecord, next engine.TaskLog) (*model.TaskLogRecord, error) {
	state := string(next.State())

	if rec.ID == 0 {
		created := &model.TaskLogRecord{
			EmployeeID: rec.EmployeeID,
			WorkDate:   rec.WorkDate,
			Entries:    next.Entries,
			State:      state,
			Version:    1,
		}
		if err := s.db.WithContext(ctx).Create(created).Error; err != nil {
			// A concurrent first write hit the unique employee/date index.
			return nil, engine.ErrStaleData
		}
		return created, nil
	}

	res := s.db.WithContext(ctx).Model(rec).
		Where("version = ?", rec.Version).
		Select("entries", "state", "version").
		Updates(model.TaskLogRecord{Entries: next.Entries, State: state, Version: rec.Version + 1})
	if res.Error != nil {
		return nil, fmt.Errorf("commit task log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, engine.ErrStaleData
	}
	rec.Entries = next.Entries
	rec.State = state
	rec.Version++
	return rec, nil
}

// AddEntry appends a task entry against the day's clock event.
func (s *TaskLogService) AddEntry(ctx context.Context, employeeID int, date string, clock engine.ClockEvent, now int, details string) (*model.TaskLogRecord, error) {
	return s.apply(ctx, employeeID, date, func(l engine.TaskLog) (engine.TaskLog, error) {
		return engine.AddEntry(l, clock, now, details, s.rules)
	})
}

// UpdateEntry sets one field on the entry at index.
func (s *TaskLogService) UpdateEntry(ctx context.Context, employeeID int, date string, now, index int, field engine.Field, value string) (*model.TaskLogRecord, error) {
	return s.apply(ctx, employeeID, date, func(l engine.TaskLog) (engine.TaskLog, error) {
		return engine.UpdateEntry(l, now, index, field, value)
	})
}

// DeleteEntry removes the entry at index.
func (s *TaskLogService) DeleteEntry(ctx context.Context, employeeID int, date string, index int) (*model.TaskLogRecord, error) {
	return s.apply(ctx, employeeID, date, func(l engine.TaskLog) (engine.TaskLog, error) {
		return engine.DeleteEntry(l, index)
	})
}

// Save validates and locks the day's log.
func (s *TaskLogService) Save(ctx context.Context, employeeID int, date string, now int) (*model.TaskLogRecord, error) {
	return s.apply(ctx, employeeID, date, func(l engine.TaskLog) (engine.TaskLog, error) {
		return engine.Save(l, now, s.rules)
	})
}
