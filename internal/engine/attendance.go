package engine

// DayStatus is the attendance label for one employee day.
type DayStatus string

const (
	DayPresent       DayStatus = "Present"
	DayHalfDay       DayStatus = "HalfDay"
	DayAbsent        DayStatus = "Absent"
	DayLogoutMissing DayStatus = "LogoutMissing"
	DayInOffice      DayStatus = "InOffice"
	DayWeekend       DayStatus = "Weekend"
)

// Thresholds are the externally configured worked-minute cutoffs for a full
// and a half day.
type Thresholds struct {
	PresentMin int
	HalfDayMin int
}

// DayFacts is the classifier input. Weekend and DayClosed come from the
// caller's calendar; the classifier only maps, it derives nothing.
type DayFacts struct {
	HasClockEvent    bool
	HasLogin         bool
	HasLogout        bool
	DayClosed        bool
	Weekend          bool
	TotalWorkMinutes int
}

// ClassifyDay maps a day's facts to its attendance status. Weekend wins
// over everything; a day with no clock event is Absent; a missing logout is
// InOffice while the day is still open and LogoutMissing once it has
// closed; otherwise the worked-minute thresholds decide.
func ClassifyDay(f DayFacts, t Thresholds) DayStatus {
	switch {
	case f.Weekend:
		return DayWeekend
	case !f.HasClockEvent || !f.HasLogin:
		return DayAbsent
	case !f.HasLogout && !f.DayClosed:
		return DayInOffice
	case !f.HasLogout:
		return DayLogoutMissing
	case f.TotalWorkMinutes >= t.PresentMin:
		return DayPresent
	case f.TotalWorkMinutes >= t.HalfDayMin:
		return DayHalfDay
	default:
		return DayAbsent
	}
}
