package db

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/worklabs/worklog/internal/store"
	"github.com/worklabs/worklog/internal/track"
)

var (
	// ErrEmptyName indicates an add with an empty project name. The key
	// "" is unusable: replay could not tell such a project apart from
	// the no-active-project state.
	ErrEmptyName = errors.New("db: project name is empty")

	// ErrProjectExists indicates an add targeting a key already in use.
	ErrProjectExists = errors.New("db: project already exists")

	// ErrProjectNotFound indicates an operation targeting a key with no
	// project behind it.
	ErrProjectNotFound = errors.New("db: project not found")

	// ErrNothingTracked indicates a stop with no record running anywhere.
	ErrNothingTracked = errors.New("db: no project is being tracked")
)

// Database owns the log and the key → project map, plus the pointer to
// the currently active project. It is not safe for concurrent use; the
// directory lock already restricts a data directory to one process, and
// within a process one command runs at a time.
type Database struct {
	log      *store.Log
	projects map[string]*track.Project
	active   string // key of the project with an open record, "" if none
	clock    Clock
}

// Open locks the data directory, replays the full log to rebuild the
// project map and active pointer, and returns the ready database. Any
// replay failure closes the log again and is fatal to the caller.
func Open(dir string) (*Database, error) {
	return OpenWithClock(dir, WallClock{})
}

// OpenWithClock is Open with a caller-supplied clock for record
// timestamps. Tests use it to pin time.
func OpenWithClock(dir string, clock Clock) (*Database, error) {
	log, err := store.Open(dir)
	if err != nil {
		return nil, err
	}
	d := &Database{
		log:      log,
		projects: make(map[string]*track.Project),
		clock:    clock,
	}
	if err := d.load(); err != nil {
		_ = log.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the data directory.
func (d *Database) Close() error {
	return d.log.Close()
}

// AddProject creates an empty project under the name's key.
func (d *Database) AddProject(name string) (*track.Project, error) {
	key := track.KeyOf(name)
	if key == "" {
		return nil, ErrEmptyName
	}
	if _, ok := d.projects[key]; ok {
		return nil, fmt.Errorf("%q: %w", name, ErrProjectExists)
	}
	rcpt, err := d.log.Append(store.ProjectAdd{Name: name})
	if err != nil {
		return nil, err
	}
	return d.apply(key, rcpt.Action())
}

// RemoveProject discards the project under the name's key, records and
// all. Removing the active project clears the active pointer; the
// discarded records are simply gone.
func (d *Database) RemoveProject(name string) (*track.Project, error) {
	key := track.KeyOf(name)
	if _, ok := d.projects[key]; !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrProjectNotFound)
	}
	rcpt, err := d.log.Append(store.ProjectDel{Name: name})
	if err != nil {
		return nil, err
	}
	return d.apply(key, rcpt.Action())
}

// StartOn begins tracking the named project now. Whatever was running
// before is stopped first, silently; switching projects is one call.
func (d *Database) StartOn(name string) (*track.Project, error) {
	if _, err := d.silentStop(); err != nil {
		return nil, err
	}
	key := track.KeyOf(name)
	p, ok := d.projects[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrProjectNotFound)
	}
	now := d.clock.Now()
	if err := cropCheck(p, now); err != nil {
		return nil, fmt.Errorf("start %q: %w", name, err)
	}
	rcpt, err := d.log.Append(store.StartAt(name, now))
	if err != nil {
		return nil, err
	}
	return d.apply(key, rcpt.Action())
}

// Stop ends the currently running record and returns its project.
func (d *Database) Stop() (*track.Project, error) {
	if d.active == "" {
		return nil, ErrNothingTracked
	}
	return d.silentStop()
}

// silentStop closes whatever record is running, if any. No record
// running is not an error; callers that require one check first.
func (d *Database) silentStop() (*track.Project, error) {
	if d.active == "" {
		return nil, nil
	}
	key := d.active
	p := d.projects[key]
	if p == nil || !p.InFlight() {
		d.active = ""
		return p, nil
	}
	now := d.clock.Now()
	if err := cropCheck(p, now); err != nil {
		return nil, fmt.Errorf("stop %q: %w", key, err)
	}
	rcpt, err := d.log.Append(store.StopAt(now))
	if err != nil {
		return nil, err
	}
	return d.apply(key, rcpt.Action())
}

// cropCheck dry-runs the crop a start or stop at the given instant
// would perform on the project's trailing record. It mutates only a
// copy: an entry the apply step would refuse must be caught before it
// becomes durable, or the next replay inherits the failure.
func cropCheck(p *track.Project, end time.Time) error {
	records := p.Records()
	if len(records) == 0 {
		return nil
	}
	last := records[len(records)-1]
	_, err := last.Crop(end)
	return err
}

// ListProjects returns all projects ordered by case-insensitive name.
// Pure read; the log is not touched.
func (d *Database) ListProjects() []*track.Project {
	out := make([]*track.Project, 0, len(d.projects))
	for _, p := range d.projects {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *track.Project) int {
		return strings.Compare(track.KeyOf(a.Name()), track.KeyOf(b.Name()))
	})
	return out
}

// CurrentProject returns the project whose record is running, or nil.
func (d *Database) CurrentProject() *track.Project {
	if d.active == "" {
		return nil
	}
	return d.projects[d.active]
}

// apply mutates the in-memory map with a durably stored action. Live
// paths reach it only through an append receipt; replay feeds it decoded
// entries, which were durable by definition. The switch is exhaustive
// over the closed action set.
func (d *Database) apply(key string, a store.Action) (*track.Project, error) {
	switch act := a.(type) {
	case store.ProjectAdd:
		if _, ok := d.projects[key]; ok {
			return nil, fmt.Errorf("%q: %w", act.Name, ErrProjectExists)
		}
		p := track.NewProject(act.Name)
		d.projects[key] = p
		return p, nil

	case store.ProjectDel:
		p, ok := d.projects[key]
		if !ok {
			return nil, fmt.Errorf("%q: %w", act.Name, ErrProjectNotFound)
		}
		delete(d.projects, key)
		if d.active == key {
			d.active = ""
		}
		return p, nil

	case store.RecordStart:
		p, ok := d.projects[key]
		if !ok {
			return nil, fmt.Errorf("%q: %w", act.Name, ErrProjectNotFound)
		}
		if _, err := p.AddRecord(track.NewRecord(act.Time())); err != nil {
			return nil, fmt.Errorf("start record on %q: %w", act.Name, err)
		}
		d.active = key
		return p, nil

	case store.RecordStop:
		p, ok := d.projects[key]
		if !ok {
			return nil, fmt.Errorf("%q: %w", key, ErrProjectNotFound)
		}
		if !p.InFlight() {
			return nil, fmt.Errorf("stop %q: no record running", key)
		}
		if _, err := p.EndAt(act.Time()); err != nil {
			return nil, fmt.Errorf("stop %q: %w", key, err)
		}
		d.active = ""
		return p, nil

	default:
		return nil, fmt.Errorf("unhandled action %T", a)
	}
}
