package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"arrayv-music/codegen"
	"arrayv-music/config"
	"arrayv-music/midi"
	"arrayv-music/theme"
	"arrayv-music/translate"
)

// quarter is 500ms at the default 120bpm and 960 ticks per quarter
const quarter = 960

func writeMIDI(t *testing.T, notes []midi.Note) string {
	t.Helper()
	var buf bytes.Buffer
	if err := midi.WriteNotes(&buf, midi.WriteOptions{}, notes); err != nil {
		t.Fatalf("WriteNotes failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "song.mid")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func configWithSlots(n int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.MaxSlots = n
	return cfg
}

func ops(events []translate.Event) string {
	var s []string
	for _, ev := range events {
		s = append(s, ev.String())
	}
	return strings.Join(s, " ")
}

func TestConvertChord(t *testing.T) {
	path := writeMIDI(t, []midi.Note{
		{Key: 60, Start: 0, Length: quarter},
		{Key: 64, Start: 0, Length: quarter},
	})

	conv, err := convertFile(path, config.DefaultConfig())
	if err != nil {
		t.Fatalf("convertFile failed: %v", err)
	}

	want := []translate.Event{
		translate.MarkEvent(0, translate.SoundValue(60)),
		translate.MarkEvent(1, translate.SoundValue(64)),
		translate.WaitEvent(500 * time.Millisecond),
		translate.ClearEvent(0),
		translate.ClearEvent(1),
	}
	if ops(conv.Events) != ops(want) {
		t.Errorf("expected %s\ngot      %s", ops(want), ops(conv.Events))
	}
}

func TestConvertSequentialSingleSlot(t *testing.T) {
	path := writeMIDI(t, []midi.Note{
		{Key: 60, Start: 0, Length: quarter},
		{Key: 62, Start: quarter, Length: quarter},
		{Key: 64, Start: 2 * quarter, Length: quarter},
	})

	conv, err := convertFile(path, configWithSlots(1))
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, ev := range conv.Events {
		switch ev.Op {
		case translate.Mark:
			got = append(got, "Mark")
		case translate.Clear:
			got = append(got, "Clear")
		}
	}
	if strings.Join(got, ",") != "Mark,Clear,Mark,Clear,Mark,Clear" {
		t.Errorf("unexpected sequence %v", got)
	}
	if conv.Stats.Evictions != 0 {
		t.Errorf("expected no evictions, got %d", conv.Stats.Evictions)
	}
}

func TestConvertOverlapSingleSlot(t *testing.T) {
	path := writeMIDI(t, []midi.Note{
		{Key: 60, Start: 0, Length: 2 * quarter},
		{Key: 67, Start: quarter, Length: 2 * quarter},
	})

	conv, err := convertFile(path, configWithSlots(1))
	if err != nil {
		t.Fatal(err)
	}

	want := []translate.Event{
		translate.MarkEvent(0, translate.SoundValue(60)),
		translate.WaitEvent(500 * time.Millisecond),
		translate.MarkEvent(0, translate.SoundValue(67)),
		translate.WaitEvent(time.Second),
		translate.ClearEvent(0),
	}
	if ops(conv.Events) != ops(want) {
		t.Errorf("expected %s\ngot      %s", ops(want), ops(conv.Events))
	}
	if conv.Stats.Suppressed != 1 {
		t.Errorf("expected the first note-off to be swallowed, got %+v", conv.Stats)
	}
}

func TestConvertDeterministic(t *testing.T) {
	var notes []midi.Note
	for i := 0; i < 40; i++ {
		notes = append(notes, midi.Note{
			Key:     uint8(40 + (i*7)%36),
			Channel: uint8(i % 3),
			Start:   uint32(i * 120),
			Length:  uint32(240 + (i%5)*200),
		})
	}
	path := writeMIDI(t, notes)

	cfg := configWithSlots(4)
	cfg.MaxLines = 16
	cfg.HighPrecisionTiming = true

	var outputs [2][]byte
	for i := range outputs {
		conv, err := convertFile(path, cfg)
		if err != nil {
			t.Fatal(err)
		}
		out := filepath.Join(t.TempDir(), "MusicSort.java")
		if err := codegen.WriteFile(out, conv.Events, cfg.Codegen()); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		outputs[i] = data
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("expected byte-identical output")
	}
	if !bytes.Contains(outputs[0], []byte("private void m1()")) {
		t.Error("expected the small budget to split methods")
	}
}

func TestConvertRejectsNonMIDI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("C D E F G"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := convertFile(path, config.DefaultConfig())
	var ffe *midi.FileFormatError
	if !errors.As(err, &ffe) {
		t.Fatalf("expected FileFormatError, got %v", err)
	}
}

func TestRenderSummary(t *testing.T) {
	path := writeMIDI(t, []midi.Note{
		{Key: 60, Start: 0, Length: 2 * quarter},
		{Key: 67, Start: quarter, Length: 2 * quarter},
	})
	cfg := configWithSlots(1)
	conv, err := convertFile(path, cfg)
	if err != nil {
		t.Fatal(err)
	}

	out := renderSummary(theme.New(theme.DefaultPalette()), conv, cfg, "MusicSort.java")
	for _, want := range []string{"MusicSort.java", "1.5s", "2 marks, 1 clears, 1 used of 1", "evictions", "1 note-offs dropped"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected summary to contain %q\n%s", want, out)
		}
	}
}

func TestHeaderColor(t *testing.T) {
	th := theme.New(theme.DefaultPalette())
	if got := headerColor(th, translate.Stats{}); got != th.Success() {
		t.Errorf("expected success color without evictions, got %s", got)
	}
	if got := headerColor(th, translate.Stats{Evictions: 2}); got != th.Warning() {
		t.Errorf("expected warning color with evictions, got %s", got)
	}
}
