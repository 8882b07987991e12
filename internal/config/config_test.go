package config

import (
	"testing"

	"work-ledger/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesRequireAllConstants(t *testing.T) {
	c := &Config{}
	_, err := c.Rules()
	var missing *engine.ConfigurationMissingError
	require.ErrorAs(t, err, &missing)

	c.Accounting = AccountingConfig{
		PermissionLimitMin: 120,
		StandardLunchMin:   60,
		StandardBreakMin:   30,
	}
	_, err = c.Rules()
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "accounting.min_detail_len", missing.Key)

	c.Accounting.MinDetailLen = 25
	rules, err := c.Rules()
	require.NoError(t, err)
	assert.Equal(t, engine.Rules{
		PermissionLimitMin: 120,
		StandardLunchMin:   60,
		StandardBreakMin:   30,
		MinDetailLen:       25,
	}, rules)
}

func TestThresholdsRequired(t *testing.T) {
	c := &Config{}
	_, err := c.Thresholds()
	var missing *engine.ConfigurationMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "attendance.present_min", missing.Key)

	c.Attendance = AttendanceConfig{PresentMin: 420, HalfDayMin: 240}
	th, err := c.Thresholds()
	require.NoError(t, err)
	assert.Equal(t, engine.Thresholds{PresentMin: 420, HalfDayMin: 240}, th)
}
