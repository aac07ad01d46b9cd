package midi

import (
	"fmt"
	"time"
)

// Kind classifies both raw messages and normalized events
type Kind uint8

const (
	Other Kind = iota
	NoteOn
	NoteOff
	EndOfTrack
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	case EndOfTrack:
		return "end_of_track"
	}
	return "other"
}

// Message is one entry of the merged, chronological stream read from a file.
// Delay is the wall-clock time elapsed since the previous message.
type Message struct {
	Kind    Kind
	Key     uint8
	Channel uint8
	Delay   time.Duration
}

// Event is a normalized note event. WaitAfter is the time between this event
// and the next one.
type Event struct {
	Kind      Kind // NoteOn or NoteOff
	Pitch     int
	Channel   int
	WaitAfter time.Duration
}

func (e Event) String() string {
	return fmt.Sprintf("[%d] %s %s wait: %s", e.Channel, e.Kind, PitchName(e.Pitch), e.WaitAfter)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName renders a MIDI key number as scientific pitch notation (60 = C4)
func PitchName(pitch int) string {
	if pitch < 0 {
		return fmt.Sprintf("?%d", pitch)
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], (pitch/12)-1)
}
