package translate

import (
	"time"
)

// MaxSlots is the default pool size. ArrayV highlights at most 15 positions,
// but it does not always process clearMark in time, so one is kept spare.
const (
	MaxSlots     = 14
	HardMaxSlots = 15
)

// NoteID identifies a sounding note; MIDI has no note ids, so (pitch, channel)
// is all there is
type NoteID struct {
	Pitch   int
	Channel int
}

type slot struct {
	sound     float64
	occupants []NoteID // multiset; a repeated note-on adds a second entry
	age       time.Duration
}

func (s *slot) remove(id NoteID) bool {
	for i, o := range s.occupants {
		if o == id {
			s.occupants = append(s.occupants[:i], s.occupants[i+1:]...)
			return true
		}
	}
	return false
}

// Pool is the bounded set of highlight slots plus the notes whose slot was stolen
type Pool struct {
	slots     []*slot        // nil = empty
	discarded map[NoteID]int // multiset
}

func NewPool(size int) *Pool {
	return &Pool{
		slots:     make([]*slot, size),
		discarded: make(map[NoteID]int),
	}
}

func (p *Pool) Size() int { return len(p.slots) }

func (p *Pool) findSound(sound float64) int {
	for i, s := range p.slots {
		if s != nil && s.sound == sound {
			return i
		}
	}
	return -1
}

func (p *Pool) firstFree() int {
	for i, s := range p.slots {
		if s == nil {
			return i
		}
	}
	return -1
}

// oldest returns the occupied slot with the greatest age, lowest index first on ties
func (p *Pool) oldest() int {
	best := -1
	for i, s := range p.slots {
		if s == nil {
			continue
		}
		if best < 0 || s.age > p.slots[best].age {
			best = i
		}
	}
	return best
}

func (p *Pool) owner(id NoteID) int {
	for i, s := range p.slots {
		if s == nil {
			continue
		}
		for _, o := range s.occupants {
			if o == id {
				return i
			}
		}
	}
	return -1
}

func (p *Pool) takeDiscarded(id NoteID) bool {
	n := p.discarded[id]
	if n == 0 {
		return false
	}
	if n == 1 {
		delete(p.discarded, id)
	} else {
		p.discarded[id] = n - 1
	}
	return true
}

func (p *Pool) age(d time.Duration) {
	for _, s := range p.slots {
		if s != nil {
			s.age += d
		}
	}
}

// SlotState is a read-only view of one slot
type SlotState struct {
	Index     int
	Occupied  bool
	Sound     float64
	Occupants []NoteID
	Age       time.Duration
}

// Snapshot copies the pool state
func (p *Pool) Snapshot() []SlotState {
	out := make([]SlotState, len(p.slots))
	for i, s := range p.slots {
		out[i] = SlotState{Index: i}
		if s == nil {
			continue
		}
		out[i].Occupied = true
		out[i].Sound = s.sound
		out[i].Age = s.age
		out[i].Occupants = append([]NoteID(nil), s.occupants...)
	}
	return out
}

// Discarded returns how many note-offs are waiting to be swallowed
func (p *Pool) Discarded() int {
	n := 0
	for _, c := range p.discarded {
		n += c
	}
	return n
}
