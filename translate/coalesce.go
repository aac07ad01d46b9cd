package translate

import "time"

// Coalesce merges runs of adjacent waits into one. Runs adding up to zero
// disappear; everything else keeps its order.
func Coalesce(events []Event) []Event {
	out := make([]Event, 0, len(events))
	var pending time.Duration
	for _, ev := range events {
		if ev.Op == Wait {
			pending += ev.Duration
			continue
		}
		if pending != 0 {
			out = append(out, WaitEvent(pending))
			pending = 0
		}
		out = append(out, ev)
	}
	if pending != 0 {
		out = append(out, WaitEvent(pending))
	}
	return out
}
