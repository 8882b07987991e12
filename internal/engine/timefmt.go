package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ToMinutes converts an HH:MM wall-clock string to minutes since midnight.
// Empty input means "not recorded" and reports ok=false without an error.
func ToMinutes(s string) (min int, ok bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false, &InvalidTimeFormatError{Value: s}
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, true, nil
}

// FromMinutes renders minutes since midnight as a canonical HH:MM string.
func FromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// MinuteOf truncates a wall-clock instant to its minute of day.
func MinuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
