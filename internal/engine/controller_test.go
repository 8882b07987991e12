package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = Rules{
	PermissionLimitMin: 120,
	StandardLunchMin:   60,
	StandardBreakMin:   30,
	MinDetailLen:       25,
}

const longDetails = "reviewed merge requests for the billing service"

func testClock() ClockEvent {
	return ClockEvent{EmployeeID: 7, Date: "2026-08-28", Login: "09:00"}
}

func draftLog(entries ...TaskEntry) TaskLog {
	return TaskLog{EmployeeID: 7, Date: "2026-08-28", Entries: entries}
}

func assertSerialsContiguous(t *testing.T, log TaskLog) {
	t.Helper()
	for i, e := range log.Entries {
		assert.Equal(t, i+1, e.SerialNo)
	}
}

func TestAddEntryFirstSeedsStartFromClockIn(t *testing.T) {
	log, err := AddEntry(draftLog(), testClock(), 9*60+30, longDetails, testRules)
	require.NoError(t, err)
	require.Len(t, log.Entries, 1)

	e := log.Entries[0]
	assert.Equal(t, 1, e.SerialNo)
	assert.Equal(t, "09:00", e.StartTime)
	assert.Empty(t, e.EndTime)
	assert.Equal(t, StatusInProgress, e.Status)
	assert.False(t, e.Saved)
}

func TestAddEntryClosesOpenPredecessor(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", Status: StatusInProgress})

	next, err := AddEntry(log, testClock(), 10*60+30, longDetails, testRules)
	require.NoError(t, err)
	require.Len(t, next.Entries, 2)

	assert.Equal(t, "10:30", next.Entries[0].EndTime)
	assert.Equal(t, StatusCompleted, next.Entries[0].Status)
	assert.Equal(t, "10:30", next.Entries[1].StartTime)
	assertSerialsContiguous(t, next)

	// original value untouched
	assert.Empty(t, log.Entries[0].EndTime)
}

func TestAddEntryChainsFromCompletedPredecessor(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "11:00", Status: StatusCompleted})

	next, err := AddEntry(log, testClock(), 11*60+45, longDetails, testRules)
	require.NoError(t, err)
	assert.Equal(t, "11:00", next.Entries[1].StartTime)
}

func TestAddEntrySameMinuteRejected(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", Status: StatusInProgress})

	next, err := AddEntry(log, testClock(), 9*60, longDetails, testRules)
	assert.ErrorIs(t, err, ErrSameTimestamp)
	assert.Equal(t, log, next)
}

func TestAddEntrySavedLogRejected(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "10:00", Status: StatusCompleted, Saved: true})
	require.Equal(t, StateSaved, log.State())

	next, err := AddEntry(log, testClock(), 11*60, longDetails, testRules)
	assert.ErrorIs(t, err, ErrLogSaved)
	assert.Equal(t, log, next)
	assert.Equal(t, StateSaved, next.State())
}

func TestAddEntrySameMinuteNonCanonicalStart(t *testing.T) {
	// a clock-in recorded as "9:30" seeds a non-canonical start; the
	// same-minute guard must still hold
	clock := testClock()
	clock.Login = "9:30"

	log, err := AddEntry(draftLog(), clock, 9*60+30, longDetails, testRules)
	require.NoError(t, err)
	require.Equal(t, "9:30", log.Entries[0].StartTime)

	next, err := AddEntry(log, clock, 9*60+30, longDetails, testRules)
	assert.ErrorIs(t, err, ErrSameTimestamp)
	assert.Equal(t, log, next)
}

func TestAddEntryShortDetailsBlocked(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: "short", StartTime: "09:00", Status: StatusInProgress})

	next, err := AddEntry(log, testClock(), 10*60, longDetails, testRules)
	var blocked *AppendBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, 25, blocked.MinDetailLen)
	assert.Equal(t, log, next)
}

func TestAddEntryPermissionActiveBlocked(t *testing.T) {
	clock := testClock()
	clock.PermissionMinutes = 60

	_, err := AddEntry(draftLog(), clock, 10*60, longDetails, testRules)
	assert.ErrorIs(t, err, ErrPermissionActive)

	clock.PermissionLocked = true
	_, err = AddEntry(draftLog(), clock, 10*60, longDetails, testRules)
	assert.NoError(t, err)
}

func TestUpdateEntryTimesAreImmutable(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", Status: StatusInProgress})

	for _, field := range []Field{FieldStartTime, FieldEndTime} {
		_, err := UpdateEntry(log, 10*60, 0, field, "09:30")
		var immutable *ImmutableFieldError
		require.ErrorAs(t, err, &immutable, field)
		assert.Equal(t, field, immutable.Field)
	}

	// immutable even on a saved entry
	log.Entries[0].Saved = true
	_, err := UpdateEntry(log, 10*60, 0, FieldStartTime, "09:30")
	var immutable *ImmutableFieldError
	assert.ErrorAs(t, err, &immutable)
}

func TestUpdateEntrySavedOnlyStatus(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "10:00", Status: StatusCompleted, Saved: true})

	_, err := UpdateEntry(log, 10*60, 0, FieldRemarks, "late note")
	var locked *LockedEntryError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, 1, locked.SerialNo)

	next, err := UpdateEntry(log, 10*60, 0, FieldStatus, string(StatusBlocked))
	require.NoError(t, err)
	assert.Equal(t, StatusBlocked, next.Entries[0].Status)
}

func TestUpdateEntryDetailsSeedsStartTime(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Status: StatusInProgress})

	next, err := UpdateEntry(log, 9*60+15, 0, FieldDetails, longDetails)
	require.NoError(t, err)
	assert.Equal(t, "09:15", next.Entries[0].StartTime)
}

func TestUpdateEntryDetailsPrefersLaterPredecessorEnd(t *testing.T) {
	log := draftLog(
		TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "11:00", Status: StatusCompleted},
		TaskEntry{SerialNo: 2, Status: StatusInProgress},
	)

	// now is before the predecessor's end: the end wins
	next, err := UpdateEntry(log, 10*60, 1, FieldDetails, longDetails)
	require.NoError(t, err)
	assert.Equal(t, "11:00", next.Entries[1].StartTime)
}

func TestUpdateEntryRejectsUnknownStatus(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", Status: StatusInProgress})

	_, err := UpdateEntry(log, 10*60, 0, FieldStatus, "Procrastinating")
	var badValue *InvalidFieldValueError
	require.ErrorAs(t, err, &badValue)
	assert.Equal(t, FieldStatus, badValue.Field)

	_, err = UpdateEntry(log, 10*60, 0, Field("nonsense"), "x")
	assert.ErrorAs(t, err, &badValue)
}

func TestUpdateEntryBadIndex(t *testing.T) {
	_, err := UpdateEntry(draftLog(), 10*60, 0, FieldDetails, longDetails)
	assert.ErrorIs(t, err, ErrEntryIndex)
}

func TestDeleteEntrySavedRejected(t *testing.T) {
	log := draftLog(TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "10:00", Saved: true})

	next, err := DeleteEntry(log, 0)
	var locked *LockedEntryError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, log, next)
}

func TestDeleteEntryReassignsSuccessorStart(t *testing.T) {
	log := draftLog(
		TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "10:00", Status: StatusCompleted},
		TaskEntry{SerialNo: 2, Details: longDetails, StartTime: "10:00", EndTime: "11:00", Status: StatusCompleted},
		TaskEntry{SerialNo: 3, Details: longDetails, StartTime: "11:00", Status: StatusInProgress},
	)

	next, err := DeleteEntry(log, 1)
	require.NoError(t, err)
	require.Len(t, next.Entries, 2)
	assert.Equal(t, "10:00", next.Entries[1].StartTime)
	assertSerialsContiguous(t, next)
}

func TestDeleteFirstEntryKeepsSuccessorAnchor(t *testing.T) {
	log := draftLog(
		TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "10:00", Status: StatusCompleted},
		TaskEntry{SerialNo: 2, Details: longDetails, StartTime: "10:00", Status: StatusInProgress},
	)

	next, err := DeleteEntry(log, 0)
	require.NoError(t, err)
	require.Len(t, next.Entries, 1)
	assert.Equal(t, "09:00", next.Entries[0].StartTime)
	assert.Equal(t, 1, next.Entries[0].SerialNo)
}

func TestValidateEntry(t *testing.T) {
	errs := ValidateEntry(TaskEntry{}, testRules)
	assert.Contains(t, errs, FieldDetails)
	assert.Contains(t, errs, FieldStartTime)
	assert.Contains(t, errs, FieldEndTime)

	errs = ValidateEntry(TaskEntry{Details: longDetails, StartTime: "10:00", EndTime: "09:00"}, testRules)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, FieldEndTime)

	// marker rows are exempt from the ordering check
	errs = ValidateEntry(TaskEntry{Details: longDetails, StartTime: "10:00", EndTime: "09:00", Marker: true}, testRules)
	assert.Empty(t, errs)

	errs = ValidateEntry(TaskEntry{Details: longDetails, StartTime: "09:00", EndTime: "10:00"}, testRules)
	assert.Empty(t, errs)
}

func TestSaveValidationFailureLeavesLogUntouched(t *testing.T) {
	log := draftLog(
		TaskEntry{SerialNo: 1, Details: "short", StartTime: "09:00", EndTime: "10:00", Status: StatusCompleted},
		TaskEntry{SerialNo: 2, Details: longDetails, StartTime: "10:00", Status: StatusInProgress},
	)

	next, err := Save(log, 11*60, testRules)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, 1)
	assert.Contains(t, verrs[1], FieldDetails)
	assert.Equal(t, log, next)
	assert.Equal(t, StateDraft, next.State())
}

func TestSaveLocksAndClosesOpenEntry(t *testing.T) {
	log := draftLog(
		TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "10:00", Status: StatusCompleted},
		TaskEntry{SerialNo: 2, Details: longDetails, StartTime: "10:00", Status: StatusInProgress},
	)

	saved, err := Save(log, 11*60+30, testRules)
	require.NoError(t, err)
	assert.Equal(t, "11:30", saved.Entries[1].EndTime)
	for _, e := range saved.Entries {
		assert.True(t, e.Saved)
	}
	assert.Equal(t, StateSaved, saved.State())
}

func TestSaveIsIdempotent(t *testing.T) {
	log := draftLog(
		TaskEntry{SerialNo: 1, Details: longDetails, StartTime: "09:00", EndTime: "10:00", Status: StatusCompleted},
	)

	first, err := Save(log, 11*60, testRules)
	require.NoError(t, err)
	second, err := Save(first, 17*60, testRules)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLogStateTransitions(t *testing.T) {
	assert.Equal(t, StateDraft, draftLog().State())

	log := draftLog(
		TaskEntry{SerialNo: 1, Saved: true},
		TaskEntry{SerialNo: 2, Saved: false},
	)
	assert.Equal(t, StateDraft, log.State())

	log.Entries[1].Saved = true
	assert.Equal(t, StateSaved, log.State())
}

func TestSerialContiguityAcrossOperations(t *testing.T) {
	log := draftLog()
	clock := testClock()
	now := 9 * 60

	var err error
	for i := 0; i < 5; i++ {
		now += 30
		log, err = AddEntry(log, clock, now, longDetails, testRules)
		require.NoError(t, err)
		assertSerialsContiguous(t, log)
	}
	log, err = DeleteEntry(log, 2)
	require.NoError(t, err)
	assertSerialsContiguous(t, log)
	log, err = DeleteEntry(log, 0)
	require.NoError(t, err)
	assertSerialsContiguous(t, log)
	require.Len(t, log.Entries, 3)
}
