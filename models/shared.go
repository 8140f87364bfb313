package models

import "time"

// Principal identifies a caller of the backend actor.
type Principal string

// Time is a nanosecond counter since the Unix epoch.
type Time int64

// AsTime converts the nanosecond counter into a wall-clock time.
func (t Time) AsTime() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// FromTime converts a wall-clock time into a nanosecond counter.
func FromTime(t time.Time) Time {
	return Time(t.UnixNano())
}
