package engine

import "math"

// Summary is the derived per-day accounting result. It is recomputed on
// demand and never stored as a source of truth.
type Summary struct {
	TotalWorkMinutes        int     `json:"total_work_minutes"`
	EffectiveWorkMinutes    int     `json:"effective_work_minutes"`
	TaskAccountedMinutes    int     `json:"task_accounted_minutes"`
	GapMinutes              int     `json:"gap_minutes"`
	UnaccountedMinutes      int     `json:"unaccounted_minutes"`
	ProductivityRatePercent float64 `json:"productivity_rate_percent"`
	Gaps                    []Gap   `json:"gaps"`
}

// ComputeSummary reconciles a day's clock event against its task entries
// and detected gaps. For an in-progress day (no logout) the explicit now
// stands in for the logout time. Permission minutes are excluded from
// effective work in full; only the excess over the limit feeds back into
// the unaccounted balance. Lunch excess is measured once against the
// aggregate lunch window, break excess per individual break.
func ComputeSummary(clock ClockEvent, entries []TaskEntry, gaps []Gap, now int, rules Rules) (Summary, error) {
	s := Summary{Gaps: gaps}

	for _, e := range entries {
		start, sok, err := ToMinutes(e.StartTime)
		if err != nil {
			return Summary{}, err
		}
		end, eok, err := ToMinutes(e.EndTime)
		if err != nil {
			return Summary{}, err
		}
		if sok && eok && end > start {
			s.TaskAccountedMinutes += end - start
		}
	}
	for _, g := range gaps {
		s.GapMinutes += g.GapMinutes
	}

	loginMin, hasLogin, err := ToMinutes(clock.Login)
	if err != nil {
		return Summary{}, err
	}
	if !hasLogin {
		// No clock-in: nothing to account against, only task totals.
		return s, nil
	}
	logoutMin, hasLogout, err := ToMinutes(clock.Logout)
	if err != nil {
		return Summary{}, err
	}
	if !hasLogout {
		logoutMin = now
	}
	s.TotalWorkMinutes = logoutMin - loginMin

	lunchMinutes := 0
	lunchOut, outOK, err := ToMinutes(clock.LunchOut)
	if err != nil {
		return Summary{}, err
	}
	lunchIn, inOK, err := ToMinutes(clock.LunchIn)
	if err != nil {
		return Summary{}, err
	}
	if outOK && inOK {
		lunchMinutes = lunchIn - lunchOut
	}
	standardLunch := min(lunchMinutes, rules.StandardLunchMin)
	excessLunch := max(0, lunchMinutes-rules.StandardLunchMin)

	totalBreak, excessBreak := 0, 0
	for _, b := range clock.Breaks {
		out, outOK, err := ToMinutes(b.Out)
		if err != nil {
			return Summary{}, err
		}
		in, inOK, err := ToMinutes(b.In)
		if err != nil {
			return Summary{}, err
		}
		if !outOK || !inOK {
			continue
		}
		duration := in - out
		totalBreak += duration
		excessBreak += max(0, duration-rules.StandardBreakMin)
	}
	standardBreak := min(totalBreak, rules.StandardBreakMin)

	excessPermission := max(0, clock.PermissionMinutes-rules.PermissionLimitMin)

	s.EffectiveWorkMinutes = s.TotalWorkMinutes - standardLunch - standardBreak - clock.PermissionMinutes
	s.UnaccountedMinutes = max(0, s.EffectiveWorkMinutes-(s.TaskAccountedMinutes+s.GapMinutes)+excessLunch+excessBreak+excessPermission)

	if s.EffectiveWorkMinutes > 0 {
		rate := float64(s.TaskAccountedMinutes) / float64(s.EffectiveWorkMinutes) * 100
		s.ProductivityRatePercent = math.Min(math.Round(rate*10)/10, 100)
	}
	return s, nil
}
