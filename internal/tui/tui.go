package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/narrative-engine/internal/engine"
	"github.com/tatianab/narrative-engine/internal/models"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87AFD7")).
			Bold(true)
)

// Status is what the side panel shows next to each menu.
type Status struct {
	Area  string
	State models.PlayerState
}

// TUI is a player interface that runs one short bubbletea program per prompt
// and prints narration between them.
type TUI struct {
	in     io.Reader
	out    io.Writer
	width  int
	status func() Status
	ctx    context.Context
}

var _ engine.Interface = (*TUI)(nil)

type Option func(*TUI)

// WithStatus shows a location, stats and inventory panel beside menus.
func WithStatus(f func() Status) Option {
	return func(t *TUI) { t.status = f }
}

// WithIO overrides the terminal, mostly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(t *TUI) {
		t.in = in
		t.out = out
	}
}

// WithContext kills the prompt on screen once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(t *TUI) { t.ctx = ctx }
}

func New(width int, opts ...Option) *TUI {
	t := &TUI{in: os.Stdin, out: os.Stdout, width: width}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TUI) run(m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithInput(t.in), tea.WithOutput(t.out)}
	if t.ctx != nil {
		opts = append(opts, tea.WithContext(t.ctx))
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return final, engine.ErrQuit
	}
	return final, err
}

// Narrate prints text wrapped to the configured width.
func (t *TUI) Narrate(text string) {
	fmt.Fprintln(t.out, renderNarration(text, t.width))
}

func renderNarration(text string, width int) string {
	body := strings.TrimLeft(text, "\n")
	lead := text[:len(text)-len(body)]

	switch {
	case strings.HasPrefix(body, "Entering "), strings.HasPrefix(body, "Now Watching "):
		return lead + titleStyle.Render(body)
	case strings.HasPrefix(body, "[ "):
		if end := strings.Index(body, " ]"); end > 0 {
			tag := body[:end+2]
			rest := strings.TrimSpace(body[end+2:])
			return lead + tagStyle.Render(tag) + " " + gameStyle.Width(max(width-len(tag)-1, 20)).Render(rest)
		}
	}
	return lead + gameStyle.Width(width).Render(body)
}

func (t *TUI) PresentChoice(options []string) (int, error) {
	if len(options) == 0 {
		return -1, nil
	}

	var side string
	if t.status != nil {
		side = renderState(t.status(), t.width/3)
	}
	final, err := t.run(newMenuModel(options, side))
	if err != nil {
		return 0, err
	}
	m := final.(menuModel)
	if m.quit || m.chosen < 0 {
		return 0, engine.ErrQuit
	}
	fmt.Fprintln(t.out, userStyle.Render("> "+options[m.chosen]))
	return m.chosen, nil
}

func (t *TUI) PromptFreeText(prompt string) (string, error) {
	fmt.Fprintln(t.out, helpStyle.Render(prompt))
	return t.prompt(newInputModel("What do you do?", false))
}

// PromptSecret reads a line without echoing it, for API keys.
func (t *TUI) PromptSecret(prompt string) (string, error) {
	fmt.Fprintln(t.out, prompt)
	return t.prompt(newInputModel("paste your key", true))
}

func (t *TUI) prompt(m inputModel) (string, error) {
	final, err := t.run(m)
	if err != nil {
		return "", err
	}
	im := final.(inputModel)
	if im.quit || !im.done {
		return "", engine.ErrQuit
	}
	if !im.secret {
		fmt.Fprintln(t.out, userStyle.Render("> "+im.value))
	}
	return im.value, nil
}

func renderState(s Status, width int) string {
	location := titleStyle.Render("LOCATION") + "\n" + s.Area + "\n\n"

	statsTitle := titleStyle.Render("STATS") + "\n"
	stats := fmt.Sprintf("Physical: %s\nMental: %s\n", s.State.PhysicalState, s.State.MentalState)
	for _, k := range slices.Sorted(maps.Keys(s.State.Fields)) {
		stats += fmt.Sprintf("%s: %s\n", k, s.State.Fields[k])
	}
	stats += "\n"

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if len(s.State.Inventory) == 0 {
		inventory = "(empty)"
	} else {
		for _, item := range s.State.Inventory {
			inventory += "- " + item + "\n"
		}
	}

	return stateStyle.Width(width).Render(location + statsTitle + stats + invTitle + inventory)
}
