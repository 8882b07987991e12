// attendance_batch classifies every employee's day and stores the result.
// It is meant to run once per day after close of business, typically from
// cron:
//
//	attendance_batch -config /etc/work-ledger/config.yaml -date 2026-08-29
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"work-ledger/internal/config"
	"work-ledger/internal/logger"
	"work-ledger/internal/service"
)

func main() {
	configFile := flag.String("config", "", "config file path")
	date := flag.String("date", "", "day to classify (YYYY-MM-DD, default yesterday)")
	weekend := flag.Bool("weekend", false, "classify the day as a weekend/holiday")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	rules, err := cfg.Rules()
	if err != nil {
		slog.Error("accounting config invalid", "err", err)
		os.Exit(1)
	}
	thresholds, err := cfg.Thresholds()
	if err != nil {
		slog.Error("attendance config invalid", "err", err)
		os.Exit(1)
	}

	day := *date
	if day == "" {
		day = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	}

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	timecardSvc := service.NewTimecardService(db)
	tasklogSvc := service.NewTaskLogService(db, rules)
	accountingSvc := service.NewAccountingService(db, timecardSvc, tasklogSvc, rules, thresholds)

	ctx := context.Background()
	employees, err := accountingSvc.Employees(ctx)
	if err != nil {
		slog.Error("list employees failed", "err", err)
		os.Exit(1)
	}

	classified, failed := 0, 0
	for _, e := range employees {
		rec, err := accountingSvc.RecordDay(ctx, e.ID, day, *weekend)
		if err != nil {
			slog.Error("classify failed", "employee_id", e.ID, "date", day, "err", err)
			failed++
			continue
		}
		slog.Info("day classified", "employee_id", e.ID, "date", day,
			"status", rec.Status, "worked_minutes", rec.TotalWorkMinutes)
		classified++
	}

	slog.Info("attendance batch done", "date", day, "classified", classified, "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}
