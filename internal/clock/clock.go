// Package clock isolates the book's only source of wall time so that
// callers can stub it out in tests. The matching engine never reads
// time.Now() directly in an algorithmically significant place.
package clock

import "time"

// Func returns the current time as milliseconds since the Unix epoch.
type Func func() int64

// System is the default Func, backed by the real clock.
func System() int64 {
	return time.Now().UnixMilli()
}
