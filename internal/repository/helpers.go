package repository

import (
	"strings"
	"time"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// durationToSeconds converts a duration to whole seconds for storage.
func durationToSeconds(d time.Duration) int {
	return int(d / time.Second)
}

// secondsToDuration converts stored whole seconds back to a duration.
func secondsToDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
