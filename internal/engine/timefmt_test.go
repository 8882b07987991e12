package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"9:05", 545},
		{"18:30", 1110},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, ok, err := ToMinutes(tc.in)
		require.NoError(t, err, tc.in)
		require.True(t, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestToMinutesEmpty(t *testing.T) {
	_, ok, err := ToMinutes("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToMinutesInvalid(t *testing.T) {
	for _, in := range []string{"24:00", "12:60", "9:5", "abc", "09:00:00", "-1:00", "09.00"} {
		_, _, err := ToMinutes(in)
		require.Error(t, err, in)
		var invalid *InvalidTimeFormatError
		assert.ErrorAs(t, err, &invalid, in)
	}
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FromMinutes(0))
	assert.Equal(t, "09:05", FromMinutes(545))
	assert.Equal(t, "18:30", FromMinutes(1110))
}

func TestMinuteOf(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 45, 59, 0, time.UTC)
	assert.Equal(t, 14*60+45, MinuteOf(at))
}
