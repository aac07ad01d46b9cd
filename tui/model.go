package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arrayv-music/midi"
	"arrayv-music/theme"
	"arrayv-music/translate"
	"arrayv-music/widgets"
)

const (
	cellWidth  = 5
	pageSize   = 16
	historyLen = 8
)

// Model steps through a recorded translation
type Model struct {
	Steps    []translate.Step
	Theme    *theme.Theme
	Title    string
	cursor   int
	showHelp bool
	quitting bool
}

func NewModel(title string, steps []translate.Step, th *theme.Theme) Model {
	return Model{
		Steps: steps,
		Theme: th,
		Title: title,
	}
}

// Cursor is the index of the step on screen
func (m Model) Cursor() int { return m.cursor }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "j", "down", "l", "right", " ":
			m.move(1)
		case "k", "up", "h", "left":
			m.move(-1)
		case "J", "pgdown":
			m.move(pageSize)
		case "K", "pgup":
			m.move(-pageSize)
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.move(len(m.Steps))
		case "n":
			m.nextEviction()
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m *Model) move(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.Steps) {
		m.cursor = len(m.Steps) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nextEviction jumps to the next step whose mark reused an occupied slot
func (m *Model) nextEviction() {
	for i := m.cursor + 1; i < len(m.Steps); i++ {
		if isEviction(m.Steps[i-1], m.Steps[i]) {
			m.cursor = i
			return
		}
	}
}

func isEviction(prev, cur translate.Step) bool {
	for _, ev := range cur.Emitted {
		if ev.Op == translate.Mark && prev.Slots[ev.Slot].Occupied {
			return true
		}
	}
	return false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	var out strings.Builder
	out.WriteString("\n")

	if len(m.Steps) == 0 {
		out.WriteString(headerStyle.Render(m.Title))
		out.WriteString("\n\n")
		out.WriteString(dimStyle.Render("no note events"))
		out.WriteString("\n")
		return out.String()
	}

	step := m.Steps[m.cursor]
	out.WriteString(headerStyle.Render(fmt.Sprintf("%s  step %d/%d", m.Title, m.cursor+1, len(m.Steps))))
	out.WriteString("\n\n")

	out.WriteString(m.renderSlots(step))
	out.WriteString("\n\n")

	// Recent input with the emitted events
	from := max(0, m.cursor-historyLen+1)
	for i := from; i <= m.cursor; i++ {
		line := m.renderStep(m.Steps[i])
		prefix := "  "
		if i == m.cursor {
			prefix = string(m.Theme.Symbols.Cursor) + " "
			line = lipgloss.NewStyle().Foreground(m.Theme.Active()).Render(line)
		} else {
			line = dimStyle.Render(line)
		}
		if i > 0 && isEviction(m.Steps[i-1], m.Steps[i]) {
			line += " " + warnStyle.Render("evict")
		}
		out.WriteString(prefix + line + "\n")
	}

	if step.Pending > 0 {
		out.WriteString("\n")
		out.WriteString(warnStyle.Render(fmt.Sprintf("%d stolen note(s) awaiting note-off", step.Pending)))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	if m.showHelp {
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(keyHelp)))
	} else {
		out.WriteString(dimStyle.Render("j/k:step  J/K:page  g/G:start/end  n:next eviction  ?:help  q:quit"))
	}
	return out.String()
}

func (m Model) renderSlots(step translate.Step) string {
	pads := make([]widgets.Pad, len(step.Slots))
	for i, s := range step.Slots {
		if !s.Occupied {
			pads[i] = widgets.Pad{
				Color: m.Theme.RGB(theme.RoleMuted),
				Rune:  m.Theme.Symbols.Empty,
				Label: fmt.Sprintf("%d", i),
			}
			continue
		}
		label := "?"
		if len(s.Occupants) > 0 {
			label = midi.PitchName(s.Occupants[0].Pitch)
		}
		pads[i] = widgets.Pad{
			Color: m.Theme.RGB(s.Sound),
			Rune:  m.Theme.Symbols.Solid,
			Label: label,
		}
	}
	return widgets.RenderPadRow(pads, cellWidth)
}

func (m Model) renderStep(step translate.Step) string {
	var evs []string
	for _, ev := range step.Emitted {
		sym := m.Theme.Symbols.Wait
		switch ev.Op {
		case translate.Mark:
			sym = m.Theme.Symbols.Mark
		case translate.Clear:
			sym = m.Theme.Symbols.Clear
		}
		evs = append(evs, fmt.Sprintf("%c %s", sym, ev))
	}
	return fmt.Sprintf("%-32s %s", step.Input, strings.Join(evs, "  "))
}

var keyHelp = []widgets.KeySection{
	{
		Title: "Navigation",
		Keys: []widgets.KeyBinding{
			{Key: "j / k", Desc: "next / previous step"},
			{Key: "J / K", Desc: "page forward / back"},
			{Key: "g / G", Desc: "first / last step"},
			{Key: "n", Desc: "next eviction"},
		},
	},
	{
		Title: "Other",
		Keys: []widgets.KeyBinding{
			{Key: "?", Desc: "toggle help"},
			{Key: "q", Desc: "quit"},
		},
	},
}

// Run starts the inspector on the terminal
func Run(title string, steps []translate.Step, th *theme.Theme) error {
	p := tea.NewProgram(NewModel(title, steps, th), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
