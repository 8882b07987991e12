package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSameTimestamp rejects closing an entry in the same minute it was
	// opened; a zero-duration entry would break the continuity chain.
	ErrSameTimestamp = errors.New("entry start and end fall in the same minute")

	// ErrPermissionActive blocks appending task entries while an unlocked
	// permission grant is pending on the day's clock record.
	ErrPermissionActive = errors.New("an unlocked permission grant is active on this day")

	// ErrStaleData is returned by the persistence boundary when a
	// compare-and-swap commit loses against a concurrent writer.
	ErrStaleData = errors.New("task log was modified by another request")

	// ErrEntryIndex reports an out-of-range entry index.
	ErrEntryIndex = errors.New("no task entry at that index")

	// ErrLogSaved rejects appends to a fully saved log; a saved day never
	// reopens, a new day starts a fresh log.
	ErrLogSaved = errors.New("task log is saved and locked for the day")
)

// InvalidTimeFormatError reports a wall-clock string that is not HH:MM.
type InvalidTimeFormatError struct {
	Value string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid time %q: expected HH:MM", e.Value)
}

// AppendBlockedError rejects addEntry while the last entry's details are
// shorter than the configured minimum.
type AppendBlockedError struct {
	MinDetailLen int
}

func (e *AppendBlockedError) Error() string {
	return fmt.Sprintf("previous entry needs details of at least %d characters before adding another", e.MinDetailLen)
}

// ImmutableFieldError rejects direct writes to controller-managed fields.
type ImmutableFieldError struct {
	Field Field
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("field %q is managed by the task log and cannot be set directly", e.Field)
}

// InvalidFieldValueError rejects a value outside a field's closed set, or
// a field name the task entry does not have.
type InvalidFieldValueError struct {
	Field Field
	Value string
}

func (e *InvalidFieldValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q", e.Value, e.Field)
}

// LockedEntryError rejects edits to a saved entry (status excepted).
type LockedEntryError struct {
	SerialNo int
}

func (e *LockedEntryError) Error() string {
	return fmt.Sprintf("entry %d is saved and locked", e.SerialNo)
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[Field]string

// ValidationErrors collects per-entry field errors from Save, keyed by
// serial number.
type ValidationErrors map[int]FieldErrors

func (v ValidationErrors) Error() string {
	serials := make([]int, 0, len(v))
	for s := range v {
		serials = append(serials, s)
	}
	sort.Ints(serials)
	var sb strings.Builder
	sb.WriteString("task log validation failed:")
	for _, s := range serials {
		for field, msg := range v[s] {
			fmt.Fprintf(&sb, " entry %d %s: %s;", s, field, msg)
		}
	}
	return sb.String()
}

// ConfigurationMissingError aborts startup when a time-accounting constant
// has no configured value. There is no safe default for these.
type ConfigurationMissingError struct {
	Key string
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("configuration value %q is required and missing", e.Key)
}
