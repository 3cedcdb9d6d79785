package domain

import (
	"fmt"
	"strings"
)

// Status is the lifecycle label of a task. It is purely descriptive: any
// status may follow any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// IsValid reports whether s is one of the enumerated statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the wire form of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts user input into a Status. Matching ignores case and
// surrounding whitespace, and accepts "in_progress" and "inprogress" as
// spellings of in-progress.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "pending":
		return StatusPending, nil
	case "in-progress", "in_progress", "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
