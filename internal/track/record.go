package track

import (
	"errors"
	"time"
)

var (
	// ErrNegativeDuration indicates a record would end before it started.
	ErrNegativeDuration = errors.New("track: record would end before it started")

	// ErrNoDuration indicates a record would end the very second it started.
	// A record must span positive time or remain open.
	ErrNoDuration = errors.New("track: record cannot end the second it started")
)

// CropOutcome reports how Crop affected a record.
type CropOutcome int

const (
	// CropNoop means the record was already closed at or before the
	// requested end; nothing changed.
	CropNoop CropOutcome = iota

	// CropEnded means an open record was closed at the requested end.
	CropEnded

	// CropCropped means an already-closed record had its end shrunk back
	// to the requested end. This is the correction path: a record left
	// open by mistake and auto-closed later gets trimmed to the earlier
	// stop that actually happened.
	CropCropped
)

func (o CropOutcome) String() string {
	switch o {
	case CropNoop:
		return "noop"
	case CropEnded:
		return "ended"
	case CropCropped:
		return "cropped"
	}
	return "unknown"
}

// Record is a single tracked work interval. It is created open (no end)
// and transitions to closed exactly once via Crop; further Crop calls may
// only shrink it.
//
// Timestamps carry a fixed UTC offset and second precision, matching what
// the log encodes.
type Record struct {
	start    time.Time
	end      time.Time
	closed   bool
	billable bool
}

// NewRecord returns an open record starting at the given instant,
// truncated to second precision. Records are billable by default; the
// flag is reserved for future use.
func NewRecord(start time.Time) Record {
	return Record{start: start.Truncate(time.Second), billable: true}
}

// Start returns the instant the record began.
func (r *Record) Start() time.Time { return r.start }

// End returns the instant the record ended, and false while it is open.
func (r *Record) End() (time.Time, bool) { return r.end, r.closed }

// OnGoing reports whether the record is still open.
func (r *Record) OnGoing() bool { return !r.closed }

// Billable reports whether the interval counts as billable time.
func (r *Record) Billable() bool { return r.billable }

// Duration returns the time the record spans. Open records are measured
// against the wall clock. The result is never negative.
func (r *Record) Duration() time.Duration {
	end := r.end
	if !r.closed {
		end = time.Now()
	}
	d := end.Sub(r.start)
	if d < 0 {
		return 0
	}
	return d
}

// Crop closes or corrects the record against the given end instant:
//
//   - end before start: ErrNegativeDuration
//   - end equal to start: ErrNoDuration
//   - record open: close it at end (CropEnded)
//   - record closed, end earlier than current end: shrink (CropCropped)
//   - otherwise: leave it alone (CropNoop)
func (r *Record) Crop(end time.Time) (CropOutcome, error) {
	end = end.Truncate(time.Second)
	switch {
	case end.Before(r.start):
		return CropNoop, ErrNegativeDuration
	case end.Equal(r.start):
		return CropNoop, ErrNoDuration
	}
	if !r.closed {
		r.end = end
		r.closed = true
		return CropEnded, nil
	}
	if end.Before(r.end) {
		r.end = end
		return CropCropped, nil
	}
	return CropNoop, nil
}

// Before orders records by start instant.
func (r *Record) Before(other Record) bool {
	return r.start.Before(other.start)
}

// Equal reports whether two records describe the same interval: same
// start, same span, same billable flag and same open/closed state.
// Intended for fixtures and assertions, not for map identity.
func (r *Record) Equal(other Record) bool {
	return r.start.Equal(other.start) &&
		r.closed == other.closed &&
		r.billable == other.billable &&
		(!r.closed || r.end.Equal(other.end))
}
