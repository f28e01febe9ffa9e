package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

var effectInfo = map[string]string{
	"particles":      "drifting dots joined by fading lines",
	"starfield":      "three parallax layers scrolling upwards",
	"shooting-stars": "diagonal streaks over a dark sky",
}

// Builder turns a chosen effect name into host options.
type Builder func(name string) (Options, error)

type picker struct {
	effects []string
	cursor  int
	build   Builder
	live    *Model
	err     error
	width   int
	height  int
}

func NewPicker(effects []string, build Builder) *picker {
	return &picker{effects: effects, build: build}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.effects)-1 {
				p.cursor++
			}
		case "enter", " ":
			return p.choose()
		}
	}
	return p, nil
}

func (p picker) choose() (tea.Model, tea.Cmd) {
	if len(p.effects) == 0 {
		return p, tea.Quit
	}
	opts, err := p.build(p.effects[p.cursor])
	if err != nil {
		p.err = err
		return p, tea.Quit
	}
	live := NewModel(opts)
	if p.width > 0 {
		live.resize(p.width, p.height)
	}
	p.live = &live
	return p, live.Init()
}

func (p picker) View() string {
	if p.live != nil {
		return p.live.View()
	}
	var s strings.Builder
	s.WriteString("\n  " + cyan.Render("particlefield") + dim.Render("  animated backgrounds") + "\n\n")
	for i, name := range p.effects {
		cursor, style := "  ", dim
		if i == p.cursor {
			cursor, style = cyan.Render("> "), white
		}
		s.WriteString("  " + cursor + style.Render(name) + "  " + dimmer.Render(effectInfo[name]) + "\n")
	}
	s.WriteString("\n  " + dimmer.Render("↑↓ select  enter start  q quit") + "\n")
	return s.String()
}

func (p picker) Err() error {
	if p.err != nil {
		return p.err
	}
	if p.live != nil {
		return p.live.Err()
	}
	return nil
}

// RunInteractive lets the user pick an effect, then runs it full screen.
func RunInteractive(effects []string, build Builder) error {
	final, err := tea.NewProgram(NewPicker(effects, build), tea.WithAltScreen(), tea.WithReportFocus()).Run()
	if err != nil {
		return err
	}
	switch p := final.(type) {
	case picker:
		return p.Err()
	case *picker:
		return p.Err()
	}
	return nil
}
