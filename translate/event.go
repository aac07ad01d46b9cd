package translate

import (
	"fmt"
	"time"
)

// Op is the kind of a visualization event
type Op uint8

const (
	Mark Op = iota
	Clear
	Wait
)

// Event is one backend-agnostic visualization instruction
type Event struct {
	Op       Op
	Slot     int           // Mark, Clear
	Sound    float64       // Mark
	Duration time.Duration // Wait
}

func MarkEvent(slot int, sound float64) Event { return Event{Op: Mark, Slot: slot, Sound: sound} }
func ClearEvent(slot int) Event               { return Event{Op: Clear, Slot: slot} }
func WaitEvent(d time.Duration) Event         { return Event{Op: Wait, Duration: d} }

func (e Event) String() string {
	switch e.Op {
	case Mark:
		return fmt.Sprintf("Mark(%d, %g)", e.Slot, e.Sound)
	case Clear:
		return fmt.Sprintf("Clear(%d)", e.Slot)
	case Wait:
		return fmt.Sprintf("Wait(%s)", e.Duration)
	}
	return "?"
}

// SoundValue maps a MIDI pitch onto the array value range. The usual pitch
// range lands in [0,1); anything outside is passed through unclamped.
func SoundValue(pitch int) float64 {
	return float64(pitch-25) / 80
}
