package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/worklabs/worklog/internal/track"
)

var (
	// ErrUnknownTag indicates an entry whose leading tag byte is not one
	// of the four known action kinds.
	ErrUnknownTag = errors.New("store: unknown action tag")

	// ErrTruncatedEntry indicates an entry too short for its tag's
	// payload, or a trailing line with no delimiter.
	ErrTruncatedEntry = errors.New("store: truncated log entry")
)

// Action tag bytes, fixed by the on-disk format.
const (
	tagProjectAdd  byte = 127
	tagProjectDel  byte = 126
	tagRecordStart byte = 125
	tagRecordStop  byte = 124
)

// Action is a durable mutation intent. The set is closed: exactly the
// four variants below exist, and decode/apply sites switch over them
// exhaustively.
type Action interface {
	// append serializes the action, including the trailing delimiter.
	append(buf []byte) []byte
}

// ProjectAdd creates an empty project under the name's key.
type ProjectAdd struct {
	Name string
}

// ProjectDel discards the project under the name's key, records and all.
type ProjectDel struct {
	Name string
}

// RecordStart opens a record on the named project at the given instant.
type RecordStart struct {
	Name   string
	Unix   int64 // epoch seconds
	Offset int32 // seconds east of UTC
}

// RecordStop closes the currently open record at the given instant. It
// deliberately names no project: it applies to whichever project the
// database tracks as active, both live and during replay.
type RecordStop struct {
	Unix   int64
	Offset int32
}

func (a ProjectAdd) append(buf []byte) []byte {
	buf = append(buf, tagProjectAdd)
	buf = append(buf, a.Name...)
	return append(buf, '\n')
}

func (a ProjectDel) append(buf []byte) []byte {
	buf = append(buf, tagProjectDel)
	buf = append(buf, a.Name...)
	return append(buf, '\n')
}

func (a RecordStart) append(buf []byte) []byte {
	buf = append(buf, tagRecordStart)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(a.Unix))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(a.Offset))
	buf = append(buf, a.Name...)
	return append(buf, '\n')
}

func (a RecordStop) append(buf []byte) []byte {
	buf = append(buf, tagRecordStop)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(a.Unix))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(a.Offset))
	return append(buf, '\n')
}

// Time reconstructs the start instant with its recorded fixed offset.
func (a RecordStart) Time() time.Time {
	return time.Unix(a.Unix, 0).In(time.FixedZone("", int(a.Offset)))
}

// Time reconstructs the stop instant with its recorded fixed offset.
func (a RecordStop) Time() time.Time {
	return time.Unix(a.Unix, 0).In(time.FixedZone("", int(a.Offset)))
}

// StartAt builds a RecordStart for the given display name and instant,
// capturing the instant's zone as a fixed offset.
func StartAt(name string, t time.Time) RecordStart {
	_, offset := t.Zone()
	return RecordStart{Name: name, Unix: t.Unix(), Offset: int32(offset)}
}

// StopAt builds a RecordStop for the given instant.
func StopAt(t time.Time) RecordStop {
	_, offset := t.Zone()
	return RecordStop{Unix: t.Unix(), Offset: int32(offset)}
}

// Encode serializes an action into its wire form, delimiter included.
func Encode(a Action) []byte {
	return a.append(nil)
}

// Decode parses one entry, without its trailing delimiter. It returns
// the project key the entry pertains to alongside the decoded action.
// RecordStop names no project and yields key "", but so does an
// empty-named entry of any other kind; callers must tell stops apart by
// the action's type, never by the key.
func Decode(data []byte) (key string, a Action, err error) {
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty entry: %w", ErrTruncatedEntry)
	}
	switch tag := data[0]; tag {
	case tagProjectAdd:
		name := string(data[1:])
		return track.KeyOf(name), ProjectAdd{Name: name}, nil
	case tagProjectDel:
		name := string(data[1:])
		return track.KeyOf(name), ProjectDel{Name: name}, nil
	case tagRecordStart:
		if len(data) < 13 {
			return "", nil, fmt.Errorf("record start of %d bytes: %w", len(data), ErrTruncatedEntry)
		}
		name := string(data[13:])
		return track.KeyOf(name), RecordStart{
			Name:   name,
			Unix:   int64(binary.LittleEndian.Uint64(data[1:9])),
			Offset: int32(binary.LittleEndian.Uint32(data[9:13])),
		}, nil
	case tagRecordStop:
		if len(data) < 13 {
			return "", nil, fmt.Errorf("record stop of %d bytes: %w", len(data), ErrTruncatedEntry)
		}
		return "", RecordStop{
			Unix:   int64(binary.LittleEndian.Uint64(data[1:9])),
			Offset: int32(binary.LittleEndian.Uint32(data[9:13])),
		}, nil
	default:
		return "", nil, fmt.Errorf("tag %d: %w", tag, ErrUnknownTag)
	}
}
