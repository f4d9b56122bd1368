package costbasis

import (
	"fmt"
	"strconv"
	"time"
)

// Timestamp is a point in time in seconds since the Unix epoch.
type Timestamp int64

// YearInSeconds is the usual tax-free holding period (365 days).
const YearInSeconds int64 = 60 * 60 * 24 * 365

// Now returns the current Timestamp.
func Now() Timestamp { return TimestampOf(time.Now()) }

// TimestampOf converts t, dropping sub-second precision.
func TimestampOf(t time.Time) Timestamp { return Timestamp(t.Unix()) }

// Time returns the UTC time of t.
func (t Timestamp) Time() time.Time { return time.Unix(int64(t), 0).UTC() }

// Year returns the UTC calendar year of t.
func (t Timestamp) Year() int { return t.Time().Year() }

// Add returns t shifted by seconds.
func (t Timestamp) Add(seconds int64) Timestamp { return t + Timestamp(seconds) }

// String formats t the way audit trails print dates: "08/11/2015, 10:48:55".
func (t Timestamp) String() string { return t.Time().Format("02/01/2006, 15:04:05") }

// Date formats t as an ISO date, used in reports.
func (t Timestamp) Date() string { return t.Time().Format(time.DateOnly) }

// ParseTimestamp accepts either seconds since epoch or an RFC 3339 date time.
func ParseTimestamp(s string) (Timestamp, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Timestamp(n), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, err
	}
	return TimestampOf(t), nil
}

// UnmarshalJSON accepts seconds since epoch, as a number or a string, or an
// RFC 3339 date time string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	*t = ts
	return nil
}
