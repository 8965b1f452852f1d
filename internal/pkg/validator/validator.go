package validator

import (
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// EpochMillis converts an epoch-milliseconds wire value to a UTC instant.
func EpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// IsValidPeriod reports whether two epoch-millisecond bounds form a
// non-empty half-open interval [start, end).
func IsValidPeriod(startMs, endMs int64) bool {
	return startMs > 0 && endMs > 0 && startMs < endMs
}
