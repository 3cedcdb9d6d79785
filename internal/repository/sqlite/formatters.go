package sqlite

import (
	"database/sql"
	"time"

	"taskboard/internal/domain"
)

// FormatTimeForDB formats a time.Time value as an RFC3339 string in UTC for
// consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// FormatDateForDB formats an optional due date, returning nil for no date
func FormatDateForDB(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

// ParseDateFromDB parses a nullable YYYY-MM-DD column
func ParseDateFromDB(s sql.NullString) (*domain.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
