package main

import (
	"fmt"
	"math/rand"
	"os"

	"arrayv-music/midi"
)

func main() {
	if len(os.Args) < 3 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "dump":
		err = dump(os.Args[2])
	case "chord":
		err = write(os.Args[2], chord())
	case "overlap":
		err = write(os.Args[2], overlap())
	case "scale":
		err = write(os.Args[2], scale())
	case "stress":
		err = write(os.Args[2], stress())
	default:
		usage()
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  dump <file>     - Print the merged message stream")
	fmt.Println("  chord <file>    - Write C and E together for one beat")
	fmt.Println("  overlap <file>  - Write two overlapping notes")
	fmt.Println("  scale <file>    - Write a C major scale")
	fmt.Println("  stress <file>   - Write 20 simultaneous notes to force evictions")
}

func dump(path string) error {
	msgs, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("=== %s: %d messages ===\n", path, len(msgs))
	for i, m := range msgs {
		switch m.Kind {
		case midi.NoteOn, midi.NoteOff:
			fmt.Printf("  %4d: %-8s %-4s ch%-2d +%s\n", i, m.Kind, midi.PitchName(int(m.Key)), m.Channel, m.Delay)
		default:
			fmt.Printf("  %4d: %-8s +%s\n", i, m.Kind, m.Delay)
		}
	}

	events := midi.Normalize(msgs)
	fmt.Printf("\n=== normalized: %d events ===\n", len(events))
	for _, ev := range events {
		fmt.Printf("  %s\n", ev)
	}
	return nil
}

func write(path string, notes []midi.Note) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := midi.WriteNotes(f, midi.WriteOptions{}, notes); err != nil {
		return err
	}
	fmt.Printf("Wrote %d notes to %s\n", len(notes), path)
	return f.Close()
}

// 960 ticks is one beat, 500ms at 120bpm
const beat = 960

func chord() []midi.Note {
	return []midi.Note{
		{Key: 60, Length: beat},
		{Key: 64, Length: beat},
	}
}

func overlap() []midi.Note {
	return []midi.Note{
		{Key: 60, Start: 0, Length: 2 * beat},
		{Key: 67, Start: beat, Length: 2 * beat},
	}
}

func scale() []midi.Note {
	var notes []midi.Note
	for i, k := range []uint8{60, 62, 64, 65, 67, 69, 71, 72} {
		notes = append(notes, midi.Note{Key: k, Start: uint32(i * beat / 2), Length: beat / 2})
	}
	return notes
}

func stress() []midi.Note {
	rng := rand.New(rand.NewSource(1))
	var notes []midi.Note
	for i := 0; i < 20; i++ {
		notes = append(notes, midi.Note{
			Key:     uint8(36 + i*3),
			Channel: uint8(i % 4),
			Start:   uint32(rng.Intn(beat / 4)),
			Length:  uint32(beat + rng.Intn(2*beat)),
		})
	}
	return notes
}
