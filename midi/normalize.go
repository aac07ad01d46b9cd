package midi

import "arrayv-music/debug"

// Normalize turns the raw stream into note events whose WaitAfter is the delay
// before the next event. Scanning stops at the first EndOfTrack; anything after
// it is ignored. Delays of other messages are folded into the latest event, or
// dropped when no event exists yet.
func Normalize(msgs []Message) []Event {
	var events []Event
	ended := false
scan:
	for _, m := range msgs {
		switch m.Kind {
		case NoteOn, NoteOff:
			events = append(events, Event{
				Kind:      m.Kind,
				Pitch:     int(m.Key),
				Channel:   int(m.Channel),
				WaitAfter: m.Delay,
			})
		case EndOfTrack:
			events = append(events, Event{Kind: EndOfTrack, WaitAfter: m.Delay})
			ended = true
			break scan
		default:
			if len(events) > 0 {
				events[len(events)-1].WaitAfter += m.Delay
			}
		}
	}
	if !ended {
		events = append(events, Event{Kind: EndOfTrack})
	}

	// Raw delays come before their message; shift them so each event carries
	// the time until the next one, then drop the terminal end marker.
	for i := 0; i < len(events)-1; i++ {
		events[i].WaitAfter = events[i+1].WaitAfter
	}
	events = events[:len(events)-1]

	debug.Log("normalize", "%d raw messages -> %d events", len(msgs), len(events))
	if len(events) == 0 {
		return nil
	}
	return events
}
