package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"arrayv-music/codegen"
	"arrayv-music/config"
	"arrayv-music/theme"
	"arrayv-music/translate"
)

func totalWait(events []translate.Event) time.Duration {
	var d time.Duration
	for _, ev := range events {
		if ev.Op == translate.Wait {
			d += ev.Duration
		}
	}
	return d
}

// renderSummary describes a finished conversion
func renderSummary(th *theme.Theme, conv *conversion, cfg *config.Config, out string) string {
	headerStyle := lipgloss.NewStyle().Foreground(headerColor(th, conv.Stats)).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(th.Muted()).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(th.FG())
	warnStyle := lipgloss.NewStyle().Foreground(th.Warning())

	s := conv.Stats
	units := len(codegen.Chunk(conv.Events, cfg.MaxLines))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	lines := []string{
		headerStyle.Render(fmt.Sprintf("%s -> %s", conv.Input, out)),
		row("notes", fmt.Sprintf("%d events", len(conv.Normalized))),
		row("length", totalWait(conv.Events).Round(time.Millisecond).String()),
		row("slots", fmt.Sprintf("%d marks, %d clears, %d used of %d", s.Marks, s.Clears, slotsUsed(conv.Events), cfg.MaxSlots)),
		row("methods", fmt.Sprintf("%d (%d statements max)", units, cfg.MaxLines)),
	}
	if s.Unisons > 0 {
		lines = append(lines, row("unison", fmt.Sprintf("%d notes shared a slot", s.Unisons)))
	}
	if s.Evictions > 0 {
		lines = append(lines, labelStyle.Render("evictions")+
			warnStyle.Render(fmt.Sprintf("%d (%d note-offs dropped)", s.Evictions, s.Suppressed)))
	}
	if s.Unmatched > 0 {
		lines = append(lines, labelStyle.Render("unmatched")+
			warnStyle.Render(fmt.Sprintf("%d note-offs without a note", s.Unmatched)))
	}
	return strings.Join(lines, "\n")
}

// headerColor flags conversions that had to cut notes short
func headerColor(th *theme.Theme, s translate.Stats) lipgloss.Color {
	if s.Evictions > 0 {
		return th.Warning()
	}
	return th.Success()
}

func slotsUsed(events []translate.Event) int {
	seen := map[int]bool{}
	for _, ev := range events {
		if ev.Op == translate.Mark {
			seen[ev.Slot] = true
		}
	}
	return len(seen)
}
