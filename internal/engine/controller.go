package engine

import "unicode/utf8"

// AddEntry appends a new in-progress entry. A saved log never accepts
// another entry. The last entry must carry details of at least
// Rules.MinDetailLen runes, and no unlocked permission grant may be
// active. An open predecessor is closed at now and becomes the new
// entry's start; closing it in the minute it started is rejected.
func AddEntry(log TaskLog, clock ClockEvent, now int, details string, rules Rules) (TaskLog, error) {
	if log.State() == StateSaved {
		return log, ErrLogSaved
	}
	if n := len(log.Entries); n > 0 {
		last := log.Entries[n-1]
		if utf8.RuneCountInString(last.Details) < rules.MinDetailLen {
			return log, &AppendBlockedError{MinDetailLen: rules.MinDetailLen}
		}
	}
	if clock.PermissionMinutes > 0 && !clock.PermissionLocked {
		return log, ErrPermissionActive
	}

	entries := cloneEntries(log.Entries)
	start := clock.Login
	if n := len(entries); n > 0 {
		last := &entries[n-1]
		if last.EndTime == "" && !last.Saved {
			// compare minutes, not strings: the start may carry a
			// non-canonical form like "9:30"
			if startMin, ok, _ := ToMinutes(last.StartTime); ok && startMin == now {
				return log, ErrSameTimestamp
			}
			last.EndTime = FromMinutes(now)
			last.Status = StatusCompleted
		}
		start = last.EndTime
	}

	entries = append(entries, TaskEntry{
		SerialNo:  len(entries) + 1,
		Details:   details,
		StartTime: start,
		Status:    StatusInProgress,
	})
	log.Entries = entries
	return log, nil
}

// UpdateEntry sets one field on the entry at index (0-based). Start and end
// times are controller-managed and never directly settable. A saved entry
// accepts only status changes. Setting details on an entry without a start
// time seeds the start from now, or the predecessor's end if that is later.
func UpdateEntry(log TaskLog, now int, index int, field Field, value string) (TaskLog, error) {
	if index < 0 || index >= len(log.Entries) {
		return log, ErrEntryIndex
	}
	if field == FieldStartTime || field == FieldEndTime {
		return log, &ImmutableFieldError{Field: field}
	}
	if log.Entries[index].Saved && field != FieldStatus {
		return log, &LockedEntryError{SerialNo: log.Entries[index].SerialNo}
	}

	entries := cloneEntries(log.Entries)
	e := &entries[index]
	switch field {
	case FieldDetails:
		e.Details = value
		if e.StartTime == "" {
			start := now
			if index > 0 {
				if prevEnd, ok, _ := ToMinutes(entries[index-1].EndTime); ok && prevEnd > now {
					start = prevEnd
				}
			}
			e.StartTime = FromMinutes(start)
		}
	case FieldStatus:
		st, ok := ParseStatus(value)
		if !ok {
			return log, &InvalidFieldValueError{Field: field, Value: value}
		}
		e.Status = st
	case FieldRemarks:
		e.Remarks = value
	case FieldLink:
		e.Link = value
	case FieldFeedback:
		e.Feedback = value
	default:
		return log, &InvalidFieldValueError{Field: field, Value: value}
	}
	log.Entries = entries
	return log, nil
}

// DeleteEntry removes the entry at index (0-based) and renumbers the rest.
// Saved entries cannot be deleted. A successor whose start was chained to
// the deleted entry's end is re-anchored to the new predecessor's end, or
// keeps the deleted entry's former start when there is no predecessor.
func DeleteEntry(log TaskLog, index int) (TaskLog, error) {
	if index < 0 || index >= len(log.Entries) {
		return log, ErrEntryIndex
	}
	deleted := log.Entries[index]
	if deleted.Saved {
		return log, &LockedEntryError{SerialNo: deleted.SerialNo}
	}

	entries := cloneEntries(log.Entries)
	entries = append(entries[:index], entries[index+1:]...)
	if index < len(entries) && deleted.EndTime != "" && entries[index].StartTime == deleted.EndTime {
		if index > 0 {
			entries[index].StartTime = entries[index-1].EndTime
		} else {
			entries[index].StartTime = deleted.StartTime
		}
	}
	for i := range entries {
		entries[i].SerialNo = i + 1
	}
	log.Entries = entries
	return log, nil
}

// ValidateEntry checks one entry for save readiness and returns a
// field-keyed error map, empty when the entry is valid.
func ValidateEntry(e TaskEntry, rules Rules) FieldErrors {
	errs := FieldErrors{}
	if e.Details == "" {
		errs[FieldDetails] = "details are required"
	} else if utf8.RuneCountInString(e.Details) < rules.MinDetailLen {
		errs[FieldDetails] = "details are too short"
	}

	start, startOK, startErr := ToMinutes(e.StartTime)
	if startErr != nil {
		errs[FieldStartTime] = "must be HH:MM"
	} else if !startOK {
		errs[FieldStartTime] = "start time is required"
	}
	end, endOK, endErr := ToMinutes(e.EndTime)
	if endErr != nil {
		errs[FieldEndTime] = "must be HH:MM"
	} else if !endOK {
		errs[FieldEndTime] = "end time is required"
	}

	if startOK && endOK && !e.Marker && end <= start {
		errs[FieldEndTime] = "end time must be after start time"
	}
	return errs
}

// Save validates every entry and, when the log is clean, closes any open
// end time at now and locks all entries. On validation failure the log is
// returned unchanged together with the collected errors. Saving an
// already-saved log is a no-op.
func Save(log TaskLog, now int, rules Rules) (TaskLog, error) {
	if log.State() == StateSaved {
		return log, nil
	}

	candidate := cloneEntries(log.Entries)
	for i := range candidate {
		if candidate[i].EndTime == "" {
			candidate[i].EndTime = FromMinutes(now)
		}
	}

	verrs := ValidationErrors{}
	for _, e := range candidate {
		if fieldErrs := ValidateEntry(e, rules); len(fieldErrs) > 0 {
			verrs[e.SerialNo] = fieldErrs
		}
	}
	if len(verrs) > 0 {
		return log, verrs
	}

	for i := range candidate {
		candidate[i].Saved = true
	}
	log.Entries = candidate
	return log, nil
}
