package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{1500 * time.Millisecond, "00:00:01"},
		{61 * time.Second, "00:01:01"},
		{3661 * time.Second, "01:01:01"},
		{86399 * time.Second, "23:59:59"},
		{86400 * time.Second, "24:00:00"},
		{90000 * time.Second, "25:00:00"},
		{-time.Hour, "00:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatClock(tc.d), "duration %s", tc.d)
	}
}

func TestFormatDone(t *testing.T) {
	got := formatDone(3661*time.Second, 8*time.Hour)
	assert.Equal(t, "Done 01:01:01 of 08:00:00", got)
}
