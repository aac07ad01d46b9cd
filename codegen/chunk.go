package codegen

import "arrayv-music/translate"

// MaxLines is the default instruction budget per generated method; the JVM
// caps the bytecode size of a single method.
const MaxLines = 256

// Lines is how many Java statements an event turns into
func Lines(ev translate.Event) int {
	if ev.Op == translate.Mark {
		return 2 // value assignment + markArray
	}
	return 1
}

// Chunk splits the final event sequence into units. A unit is closed as soon
// as it holds at least maxLines lines, so it can exceed the budget by one event.
func Chunk(events []translate.Event, maxLines int) [][]translate.Event {
	if maxLines <= 0 {
		maxLines = MaxLines
	}
	units := [][]translate.Event{nil}
	count := 0
	for _, ev := range events {
		cur := len(units) - 1
		units[cur] = append(units[cur], ev)
		count += Lines(ev)
		if count >= maxLines {
			count = 0
			units = append(units, nil)
		}
	}
	// drop the unit opened by the last event, unless it is the only one
	if len(units) > 1 && len(units[len(units)-1]) == 0 {
		units = units[:len(units)-1]
	}
	return units
}
