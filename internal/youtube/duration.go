package youtube

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PlaylistParam marks a playlist link.
const PlaylistParam = "list="

// IsPlaylistURL reports whether url points at a playlist.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ParseDuration converts a clock string to elapsed minutes.
//
// "H:MM:SS" is the canonical form; shorter clocks ("M:SS", "SS") are read
// right to left so the last field is always seconds:
//
//	ParseDuration("1:02:03") // 62.05
//	ParseDuration("3:30")    // 3.5
func ParseDuration(clock string) (float64, error) {
	fields := strings.Split(strings.TrimSpace(clock), ":")
	if len(fields) == 0 || len(fields) > 3 {
		return 0, fmt.Errorf("invalid duration %q", clock)
	}

	seconds := 0
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", clock)
		}
		seconds = seconds*60 + n
	}

	return float64(seconds) / 60.0, nil
}

// FormatClock formats d as "H:MM:SS".
func FormatClock(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}
