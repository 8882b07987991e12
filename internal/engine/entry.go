// Package engine implements the daily time and productivity accounting
// core: wall-clock normalization, the task log state machine, idle-gap
// detection, the accounting summary and the attendance day classifier.
// Everything here is pure; "now" is always an explicit minute-of-day
// parameter and no function touches storage or the system clock.
package engine

// Status is the closed set of task entry states.
type Status string

const (
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusPending    Status = "Pending"
	StatusOnHold     Status = "OnHold"
	StatusBlocked    Status = "Blocked"
)

// ParseStatus maps a wire string to a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusInProgress, StatusCompleted, StatusPending, StatusOnHold, StatusBlocked:
		return Status(s), true
	}
	return "", false
}

// Field names an editable task entry field.
type Field string

const (
	FieldDetails   Field = "details"
	FieldStartTime Field = "start_time"
	FieldEndTime   Field = "end_time"
	FieldStatus    Field = "status"
	FieldRemarks   Field = "remarks"
	FieldLink      Field = "link"
	FieldFeedback  Field = "feedback"
)

// TaskEntry is one self-reported unit of work. Start and end times are
// canonical HH:MM strings, empty when not yet set. Once Saved, every field
// except Status is immutable.
type TaskEntry struct {
	SerialNo  int    `json:"serial_no"`
	Details   string `json:"details"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    Status `json:"status"`
	Remarks   string `json:"remarks"`
	Link      string `json:"link"`
	Feedback  string `json:"feedback"`
	Marker    bool   `json:"marker"` // login/logout marker rows skip the end>start check
	Saved     bool   `json:"saved"`
}

// BreakWindow is one break-out/break-in pair on a clock record.
type BreakWindow struct {
	Out string `json:"out"`
	In  string `json:"in"`
}

// ClockEvent is the day's raw clock data for one employee. It is owned by
// the timecard collaborator and read-only inside the engine.
type ClockEvent struct {
	EmployeeID        int           `json:"employee_id"`
	Date              string        `json:"date"`
	Login             string        `json:"login"`
	Logout            string        `json:"logout"`
	LunchOut          string        `json:"lunch_out"`
	LunchIn           string        `json:"lunch_in"`
	Breaks            []BreakWindow `json:"breaks"`
	PermissionMinutes int           `json:"permission_minutes"`
	PermissionLocked  bool          `json:"permission_locked"`
}

// LogState is the task log lifecycle state.
type LogState string

const (
	StateDraft LogState = "Draft"
	StateSaved LogState = "Saved"
)

// TaskLog is the ordered task entry sequence for one employee and day.
// Operations never mutate a TaskLog in place; they return a new value.
type TaskLog struct {
	EmployeeID int         `json:"employee_id"`
	Date       string      `json:"date"`
	Entries    []TaskEntry `json:"entries"`
}

// State reports Draft while any entry is unsaved, Saved once all are
// locked. An empty log is Draft.
func (l TaskLog) State() LogState {
	if len(l.Entries) == 0 {
		return StateDraft
	}
	for _, e := range l.Entries {
		if !e.Saved {
			return StateDraft
		}
	}
	return StateSaved
}

// Rules carries the externally owned accounting constants. All values are
// required; config refuses to produce a Rules with zeroes.
type Rules struct {
	PermissionLimitMin int
	StandardLunchMin   int
	StandardBreakMin   int
	MinDetailLen       int
}

func cloneEntries(entries []TaskEntry) []TaskEntry {
	out := make([]TaskEntry, len(entries))
	copy(out, entries)
	return out
}
