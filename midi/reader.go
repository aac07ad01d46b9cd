package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"

	"arrayv-music/debug"
)

const metaEndOfTrack = 0x2F

// FileFormatError reports input that is not a well-formed MIDI container
type FileFormatError struct {
	Path string
	Err  error
}

func (e *FileFormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("not a standard MIDI file: %v", e.Err)
	}
	return fmt.Sprintf("%s: not a standard MIDI file: %v", e.Path, e.Err)
}

func (e *FileFormatError) Unwrap() error { return e.Err }

// ReadFile reads the whole file before parsing it
func ReadFile(path string) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read midi file")
	}
	msgs, err := Read(bytes.NewReader(data))
	if err != nil {
		var ffe *FileFormatError
		if errors.As(err, &ffe) {
			ffe.Path = path
		}
		return nil, err
	}
	return msgs, nil
}

type timedMessage struct {
	msg      Message
	absTicks int64
	track    int
}

// Read parses an SMF and merges its tracks into a single chronological stream.
// Tempo changes are honoured when converting ticks to time. The stream always
// ends with exactly one EndOfTrack message placed at the end of the longest track.
func Read(r io.Reader) ([]Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read midi data")
	}
	if err := checkDivision(data); err != nil {
		return nil, &FileFormatError{Err: err}
	}
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, &FileFormatError{Err: err}
	}

	var timed []timedMessage
	var endTicks int64
	for trackNo, track := range s.Tracks {
		var absTicks int64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			if absTicks > endTicks {
				endTicks = absTicks
			}
			if isEndOfTrack(ev.Message) {
				continue
			}
			timed = append(timed, timedMessage{
				msg:      classify(ev.Message),
				absTicks: absTicks,
				track:    trackNo,
			})
		}
	}

	// Tracks were appended in order, so a stable sort keeps track order on ties
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].absTicks < timed[j].absTicks
	})

	msgs := make([]Message, 0, len(timed)+1)
	var prev int64 // microseconds
	for _, tm := range timed {
		at := s.TimeAt(tm.absTicks)
		tm.msg.Delay = time.Duration(at-prev) * time.Microsecond
		prev = at
		msgs = append(msgs, tm.msg)
	}
	end := s.TimeAt(endTicks)
	msgs = append(msgs, Message{
		Kind:  EndOfTrack,
		Delay: time.Duration(end-prev) * time.Microsecond,
	})

	debug.Log("midi", "read %d tracks, %d messages, length %s",
		len(s.Tracks), len(msgs), time.Duration(end)*time.Microsecond)
	return msgs, nil
}

// checkDivision rejects SMPTE timecode headers; smf only converts metric
// ticks to time. Anything too short to hold a header is left to smf.
func checkDivision(data []byte) error {
	if len(data) < 14 || string(data[:4]) != "MThd" {
		return nil
	}
	if data[12]&0x80 != 0 {
		return errors.New("SMPTE time division is not supported")
	}
	return nil
}

func classify(m smf.Message) Message {
	var ch, key, vel uint8
	switch {
	case m.GetNoteStart(&ch, &key, &vel):
		return Message{Kind: NoteOn, Key: key, Channel: ch}
	case m.GetNoteEnd(&ch, &key):
		// also matches note-on with velocity 0
		return Message{Kind: NoteOff, Key: key, Channel: ch}
	}
	return Message{Kind: Other}
}

func isEndOfTrack(m smf.Message) bool {
	return len(m) >= 2 && m[0] == 0xFF && m[1] == metaEndOfTrack
}
