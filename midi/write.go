package midi

import (
	"io"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Note places a note on an absolute tick timeline
type Note struct {
	Key      uint8
	Channel  uint8
	Velocity uint8 // 0 means 100
	Start    uint32
	Length   uint32
}

// WriteOptions controls the header of files written by WriteNotes
type WriteOptions struct {
	Resolution uint16  // ticks per quarter note, default 960
	BPM        float64 // default 120
	Tail       uint32  // extra ticks after the last note-off
}

type placed struct {
	at  uint32
	on  bool
	msg []byte
}

// WriteNotes writes a single-track SMF with a tempo event followed by the notes.
// At equal ticks note-offs are written before note-ons.
func WriteNotes(w io.Writer, opts WriteOptions, notes []Note) error {
	if opts.Resolution == 0 {
		opts.Resolution = 960
	}
	if opts.BPM == 0 {
		opts.BPM = 120
	}

	var evs []placed
	for _, n := range notes {
		vel := n.Velocity
		if vel == 0 {
			vel = 100
		}
		evs = append(evs,
			placed{at: n.Start, on: true, msg: gomidi.NoteOn(n.Channel, n.Key, vel)},
			placed{at: n.Start + n.Length, msg: gomidi.NoteOff(n.Channel, n.Key)},
		)
	}
	sort.SliceStable(evs, func(i, j int) bool {
		if evs[i].at != evs[j].at {
			return evs[i].at < evs[j].at
		}
		return !evs[i].on && evs[j].on
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(opts.BPM))
	var last uint32
	for _, ev := range evs {
		track.Add(ev.at-last, ev.msg)
		last = ev.at
	}
	track.Close(opts.Tail)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.Resolution)
	if err := s.Add(track); err != nil {
		return err
	}
	_, err := s.WriteTo(w)
	return err
}
