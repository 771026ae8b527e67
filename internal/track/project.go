package track

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// ErrNoRecords indicates an operation that needs a trailing record was
// called on a project that never tracked anything.
var ErrNoRecords = errors.New("track: project has no records")

// AddOutcome reports what AddRecord did to the project's trailing record.
type AddOutcome int

const (
	// AddStarted means the project had no records; this is its first.
	AddStarted AddOutcome = iota

	// AddSwitched means the previous record was closed (either already,
	// or cleanly at the new record's start) before the new one began.
	AddSwitched

	// AddCropped means the previous record had been auto-closed too late
	// and was shrunk back to the new record's start.
	AddCropped
)

func (o AddOutcome) String() string {
	switch o {
	case AddStarted:
		return "started"
	case AddSwitched:
		return "switched"
	case AddCropped:
		return "cropped"
	}
	return "unknown"
}

// KeyOf returns the identity key for a project name: NFC-normalized and
// lower-cased. Two display names with the same key are the same project.
func KeyOf(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

// Project is a named, ordered collection of records. Records are kept in
// start order and only the last one may be open.
type Project struct {
	name    string
	records []Record
}

// NewProject returns an empty project. The name is preserved as given for
// display; identity is the KeyOf form.
func NewProject(name string) *Project {
	return &Project{name: name}
}

// Name returns the display name.
func (p *Project) Name() string { return p.name }

// Records returns the project's records in start-ascending order. The
// returned slice is a copy; mutating it does not affect the project.
func (p *Project) Records() []Record {
	out := make([]Record, len(p.records))
	copy(out, p.records)
	return out
}

// AddRecord appends a new record. If the trailing record is still open it
// is first closed or cropped at the new record's start, which is how
// "stop then start" and "switch projects" collapse into one operation.
// The error, if any, comes from that crop step and leaves the project
// unchanged.
func (p *Project) AddRecord(rec Record) (AddOutcome, error) {
	if len(p.records) == 0 {
		p.records = append(p.records, rec)
		return AddStarted, nil
	}
	last := &p.records[len(p.records)-1]
	cropped, err := last.Crop(rec.Start())
	if err != nil {
		return AddSwitched, err
	}
	p.records = append(p.records, rec)
	if cropped == CropCropped {
		return AddCropped, nil
	}
	return AddSwitched, nil
}

// EndAt closes or corrects the trailing record at the given instant.
// Calling it on a project with no records is a caller error.
func (p *Project) EndAt(end time.Time) (CropOutcome, error) {
	if len(p.records) == 0 {
		return CropNoop, ErrNoRecords
	}
	return p.records[len(p.records)-1].Crop(end)
}

// InFlight reports whether the project's trailing record is open.
func (p *Project) InFlight() bool {
	if len(p.records) == 0 {
		return false
	}
	return p.records[len(p.records)-1].OnGoing()
}
