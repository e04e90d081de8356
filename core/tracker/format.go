package tracker

import (
	"fmt"
	"time"
)

// startedAtLayout renders the work start timestamp in UTC.
const startedAtLayout = "2006-01-02 15:04:05 UTC"

// FormatClock renders a duration as zero-padded HH:MM:SS. The hours field is
// not truncated at 24 and may grow beyond two digits. Durations below one
// second of zero render as 00:00:00.
func FormatClock(d time.Duration) string {
	s := int64(d / time.Second)
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

func formatDone(accumulated, target time.Duration) string {
	return fmt.Sprintf("Done %s of %s", FormatClock(accumulated), FormatClock(target))
}
