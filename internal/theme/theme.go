package theme

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/pomo/internal/timer"
)

// Name identifies one of the fixed themes.
type Name string

const (
	Default Name = "default"
	Forest  Name = "forest"
	Dusk    Name = "dusk"
	Mono    Name = "mono"
)

// Names lists every theme in cycling order.
var Names = []Name{Default, Forest, Dusk, Mono}

// ErrUnknown is returned for identifiers outside Names.
var ErrUnknown = errors.New("unknown theme")

// Parse validates s.
func Parse(s string) (Name, error) {
	for _, n := range Names {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknown, s)
}

// Decode validates a stored theme record (a JSON string).
func Decode(raw []byte) (Name, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return Parse(s)
}

// Next returns the theme after n, wrapping around.
func (n Name) Next() Name {
	for i, candidate := range Names {
		if candidate == n {
			return Names[(i+1)%len(Names)]
		}
	}
	return Default
}

// Palette is the set of styles a theme provides.
type Palette struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Border  lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style

	Work       lipgloss.Color
	ShortBreak lipgloss.Color
	LongBreak  lipgloss.Color
}

// PhaseColor returns the accent color for p.
func (p Palette) PhaseColor(phase timer.Phase) lipgloss.Color {
	switch phase {
	case timer.PhaseShortBreak:
		return p.ShortBreak
	case timer.PhaseLongBreak:
		return p.LongBreak
	default:
		return p.Work
	}
}

// Clock renders the big countdown in the phase color.
func (p Palette) Clock(phase timer.Phase, finished bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Foreground(p.PhaseColor(phase)).Padding(0, 2)
	if finished {
		s = s.Blink(true)
	}
	return s
}

type colors struct {
	title, label, value, hint, err, ok string
	work, short, long                  string
	border                             string
}

var table = map[Name]colors{
	Default: {
		title: "#A6E3A1", label: "#89B4FA", value: "#F2CDCD", hint: "#CBA6F7", err: "#F38BA8", ok: "#A6E3A1",
		work: "#89B4FA", short: "#A6E3A1", long: "#CBA6F7", border: "#585b70",
	},
	Forest: {
		title: "#a6e3a1", label: "#94e2d5", value: "#f9e2af", hint: "#94e2d5", err: "#f38ba8", ok: "#a6e3a1",
		work: "#a6e3a1", short: "#94e2d5", long: "#f9e2af", border: "#a6e3a1",
	},
	Dusk: {
		title: "#cba6f7", label: "#f5c2e7", value: "#f5c2e7", hint: "#bac2de", err: "#f38ba8", ok: "#cba6f7",
		work: "#cba6f7", short: "#f5c2e7", long: "#fab387", border: "#cba6f7",
	},
}

// Get returns the palette for n. Unknown names get Default.
func Get(n Name) Palette {
	if n == Mono {
		plain := lipgloss.NewStyle()
		return Palette{
			Title:   plain.Bold(true),
			Label:   plain.Faint(true),
			Value:   plain,
			Border:  plain.Border(lipgloss.NormalBorder()).Padding(1),
			Hint:    plain.Faint(true),
			Error:   plain.Bold(true),
			Success: plain.Bold(true),
		}
	}

	c, ok := table[n]
	if !ok {
		c = table[Default]
	}
	return Palette{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.title)),
		Label:      lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(c.label)),
		Value:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.value)),
		Border:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(c.border)).Padding(1),
		Hint:       lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(c.hint)),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.err)),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.ok)),
		Work:       lipgloss.Color(c.work),
		ShortBreak: lipgloss.Color(c.short),
		LongBreak:  lipgloss.Color(c.long),
	}
}
