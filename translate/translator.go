package translate

import (
	"arrayv-music/debug"
	"arrayv-music/midi"
)

// Stats counts what happened during a translation
type Stats struct {
	Events     int
	Marks      int
	Clears     int
	Evictions  int
	Unisons    int // note-ons merged onto an already sounding slot
	Suppressed int // note-offs swallowed because their slot was stolen
	Unmatched  int // note-offs with no sounding note
}

// Translator assigns notes to slots and emits visualization events.
// It is not safe for concurrent use; events must be fed in order.
type Translator struct {
	pool  *Pool
	out   []Event
	stats Stats
}

func NewTranslator(maxSlots int) *Translator {
	if maxSlots <= 0 {
		maxSlots = MaxSlots
	}
	return &Translator{pool: NewPool(maxSlots)}
}

// Step processes one normalized event and returns the events it emitted
func (t *Translator) Step(ev midi.Event) []Event {
	start := len(t.out)
	t.stats.Events++

	id := NoteID{Pitch: ev.Pitch, Channel: ev.Channel}
	switch ev.Kind {
	case midi.NoteOn:
		t.noteOn(id)
	case midi.NoteOff:
		t.noteOff(id)
	}

	t.pool.age(ev.WaitAfter)
	debug.LogEvery(256, "alloc", "translated %d events", t.stats.Events)

	if ev.WaitAfter != 0 {
		t.out = append(t.out, WaitEvent(ev.WaitAfter))
	}
	return t.out[start:len(t.out):len(t.out)]
}

func (t *Translator) noteOn(id NoteID) {
	sound := SoundValue(id.Pitch)

	if i := t.pool.findSound(sound); i >= 0 {
		s := t.pool.slots[i]
		s.occupants = append(s.occupants, id)
		t.stats.Unisons++
		debug.Log("alloc", "%s ch%d joins slot %d", midi.PitchName(id.Pitch), id.Channel, i)
		return
	}

	i := t.pool.firstFree()
	if i < 0 {
		i = t.pool.oldest()
		victim := t.pool.slots[i]
		for _, o := range victim.occupants {
			t.pool.discarded[o]++
		}
		t.stats.Evictions++
		debug.Log("alloc", "evict slot %d (age %s, %d notes) for %s ch%d",
			i, victim.age, len(victim.occupants), midi.PitchName(id.Pitch), id.Channel)
	}

	// an evicted slot keeps sounding, it is re-marked without a clear
	t.pool.slots[i] = &slot{sound: sound, occupants: []NoteID{id}}
	t.out = append(t.out, MarkEvent(i, sound))
	t.stats.Marks++
	debug.Log("alloc", "%s ch%d -> slot %d", midi.PitchName(id.Pitch), id.Channel, i)
}

func (t *Translator) noteOff(id NoteID) {
	if t.pool.takeDiscarded(id) {
		t.stats.Suppressed++
		debug.Log("alloc", "%s ch%d was stolen, ignoring note-off", midi.PitchName(id.Pitch), id.Channel)
		return
	}

	i := t.pool.owner(id)
	if i < 0 {
		t.stats.Unmatched++
		debug.Log("alloc", "note-off for silent %s ch%d", midi.PitchName(id.Pitch), id.Channel)
		return
	}

	s := t.pool.slots[i]
	s.remove(id)
	if len(s.occupants) == 0 {
		t.pool.slots[i] = nil
		t.out = append(t.out, ClearEvent(i))
		t.stats.Clears++
		debug.Log("alloc", "slot %d cleared", i)
	}
}

// Events returns everything emitted so far, before coalescing
func (t *Translator) Events() []Event { return t.out }

func (t *Translator) Stats() Stats { return t.stats }

func (t *Translator) Slots() []SlotState { return t.pool.Snapshot() }

func (t *Translator) Discarded() int { return t.pool.Discarded() }

// Translate runs a fresh translator over the whole sequence. The result is not
// coalesced.
func Translate(events []midi.Event, maxSlots int) ([]Event, Stats) {
	t := NewTranslator(maxSlots)
	for _, ev := range events {
		t.Step(ev)
	}
	return t.Events(), t.Stats()
}

// Step is one recorded translation step
type Step struct {
	Input   midi.Event
	Emitted []Event
	Slots   []SlotState
	Pending int // note-offs still to be swallowed
}

// Trace translates the sequence and records the pool after every step
func Trace(events []midi.Event, maxSlots int) []Step {
	t := NewTranslator(maxSlots)
	steps := make([]Step, 0, len(events))
	for _, ev := range events {
		emitted := t.Step(ev)
		steps = append(steps, Step{
			Input:   ev,
			Emitted: append([]Event(nil), emitted...),
			Slots:   t.Slots(),
			Pending: t.Discarded(),
		})
	}
	return steps
}
