package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"work-ledger/internal/engine"

	gomysql "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Database   DatabaseConfig   `yaml:"database"`
	Accounting AccountingConfig `yaml:"accounting"`
	Attendance AttendanceConfig `yaml:"attendance"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// AccountingConfig carries the time-accounting constants. None of these
// have defaults: a zero value fails Rules() at startup.
type AccountingConfig struct {
	PermissionLimitMin int `yaml:"permission_limit_min"`
	StandardLunchMin   int `yaml:"standard_lunch_min"`
	StandardBreakMin   int `yaml:"standard_break_min"`
	MinDetailLen       int `yaml:"min_detail_len"`
}

// AttendanceConfig carries the day-classification thresholds, also
// mandatory.
type AttendanceConfig struct {
	PresentMin int `yaml:"present_min"`
	HalfDayMin int `yaml:"half_day_min"`
}

func Load(configFile string) *Config {
	c := &Config{
		Server:   ServerConfig{Port: 9842},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Host: "127.0.0.1", Port: 3306, Name: "work_ledger"},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/work-ledger/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Database.Host, "DB_HOST")
	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASS")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Database.Port, "DB_PORT")
	envOverrideInt(&c.Accounting.PermissionLimitMin, "PERMISSION_LIMIT_MIN")
	envOverrideInt(&c.Accounting.StandardLunchMin, "STANDARD_LUNCH_MIN")
	envOverrideInt(&c.Accounting.StandardBreakMin, "STANDARD_BREAK_MIN")
	envOverrideInt(&c.Accounting.MinDetailLen, "MIN_DETAIL_LEN")
	envOverrideInt(&c.Attendance.PresentMin, "ATTENDANCE_PRESENT_MIN")
	envOverrideInt(&c.Attendance.HalfDayMin, "ATTENDANCE_HALF_DAY_MIN")

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Rules validates and returns the engine's accounting constants. Every
// value is required; there is no safe default for these.
func (c *Config) Rules() (engine.Rules, error) {
	for key, v := range map[string]int{
		"accounting.permission_limit_min": c.Accounting.PermissionLimitMin,
		"accounting.standard_lunch_min":   c.Accounting.StandardLunchMin,
		"accounting.standard_break_min":   c.Accounting.StandardBreakMin,
		"accounting.min_detail_len":       c.Accounting.MinDetailLen,
	} {
		if v <= 0 {
			return engine.Rules{}, &engine.ConfigurationMissingError{Key: key}
		}
	}
	return engine.Rules{
		PermissionLimitMin: c.Accounting.PermissionLimitMin,
		StandardLunchMin:   c.Accounting.StandardLunchMin,
		StandardBreakMin:   c.Accounting.StandardBreakMin,
		MinDetailLen:       c.Accounting.MinDetailLen,
	}, nil
}

// Thresholds validates and returns the attendance cutoffs.
func (c *Config) Thresholds() (engine.Thresholds, error) {
	if c.Attendance.PresentMin <= 0 {
		return engine.Thresholds{}, &engine.ConfigurationMissingError{Key: "attendance.present_min"}
	}
	if c.Attendance.HalfDayMin <= 0 {
		return engine.Thresholds{}, &engine.ConfigurationMissingError{Key: "attendance.half_day_min"}
	}
	return engine.Thresholds{
		PresentMin: c.Attendance.PresentMin,
		HalfDayMin: c.Attendance.HalfDayMin,
	}, nil
}

func (c *Config) OpenGormDB() (*gorm.DB, error) {
	cfg := gomysql.NewConfig()
	cfg.User = c.Database.User
	cfg.Passwd = c.Database.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
	cfg.DBName = c.Database.Name
	cfg.ParseTime = true

	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	sqlDB := sql.OpenDB(connector)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
