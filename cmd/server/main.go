package main

import (
	"flag"
	"log/slog"
	"os"

	"work-ledger/internal/config"
	"work-ledger/internal/handler"
	"work-ledger/internal/logger"
	"work-ledger/internal/middleware"
	"work-ledger/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
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

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	authSvc := service.NewAuthService(db)
	timecardSvc := service.NewTimecardService(db)
	tasklogSvc := service.NewTaskLogService(db, rules)
	accountingSvc := service.NewAccountingService(db, timecardSvc, tasklogSvc, rules, thresholds)

	authH := handler.NewAuthHandler(authSvc)
	timecardH := handler.NewTimecardHandler(timecardSvc)
	tasklogH := handler.NewTaskLogHandler(tasklogSvc, timecardSvc)
	summaryH := handler.NewSummaryHandler(accountingSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/login", authH.Login)
	api := r.Group("/api", middleware.JWTAuth())

	api.GET("/timecard", timecardH.Get)
	api.POST("/timecard/clock-in", timecardH.ClockIn)
	api.POST("/timecard/clock-out", timecardH.ClockOut)
	api.POST("/timecard/lunch-out", timecardH.LunchOut)
	api.POST("/timecard/lunch-in", timecardH.LunchIn)
	api.POST("/timecard/break-out", timecardH.BreakOut)
	api.POST("/timecard/break-in", timecardH.BreakIn)
	api.PUT("/timecard/permission", timecardH.SetPermission)

	api.GET("/tasklog", tasklogH.Get)
	api.POST("/tasklog/entries", tasklogH.AddEntry)
	api.PUT("/tasklog/entries/:index", tasklogH.UpdateEntry)
	api.DELETE("/tasklog/entries/:index", tasklogH.DeleteEntry)
	api.POST("/tasklog/save", tasklogH.Save)

	api.GET("/summary", summaryH.Summary)
	api.GET("/attendance", summaryH.Attendance)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
