package engine

// Gap is an idle interval between two adjacent completed entries,
// identified by their serial numbers.
type Gap struct {
	AfterSerial  int `json:"after_serial"`
	BeforeSerial int `json:"before_serial"`
	GapMinutes   int `json:"gap_minutes"`
}

// DetectGaps scans adjacent entry pairs and reports every positive gap
// between one entry's end and the next entry's start. Pairs with missing
// or malformed times are skipped, and overlaps count as zero rather than
// an error: entry ordering is the controller's job, not the detector's.
func DetectGaps(entries []TaskEntry) []Gap {
	var gaps []Gap
	for i := 0; i+1 < len(entries); i++ {
		end, ok, err := ToMinutes(entries[i].EndTime)
		if !ok || err != nil {
			continue
		}
		start, ok, err := ToMinutes(entries[i+1].StartTime)
		if !ok || err != nil {
			continue
		}
		if gap := start - end; gap > 0 {
			gaps = append(gaps, Gap{
				AfterSerial:  entries[i].SerialNo,
				BeforeSerial: entries[i+1].SerialNo,
				GapMinutes:   gap,
			})
		}
	}
	return gaps
}
