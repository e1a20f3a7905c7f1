package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// menuModel picks one option with the arrow keys, j/k or a digit.
type menuModel struct {
	options []string
	side    string
	cursor  int
	chosen  int
	quit    bool
}

func newMenuModel(options []string, side string) menuModel {
	return menuModel{options: options, side: side, chosen: -1}
}

func (m menuModel) done() bool { return m.quit || m.chosen >= 0 }

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quit = true
		return m, tea.Quit
	case tea.KeyUp:
		m.move(-1)
	case tea.KeyDown, tea.KeyTab:
		m.move(1)
	case tea.KeyEnter:
		m.chosen = m.cursor
		return m, tea.Quit
	case tea.KeyRunes:
		switch s := key.String(); s {
		case "q", "Q":
			m.quit = true
			return m, tea.Quit
		case "k":
			m.move(-1)
		case "j":
			m.move(1)
		default:
			if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(m.options) {
				m.chosen = n - 1
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *menuModel) move(delta int) {
	n := len(m.options)
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m menuModel) View() string {
	if m.done() {
		return ""
	}

	var b strings.Builder
	for i, opt := range m.options {
		line := fmt.Sprintf("%d) %s", i+1, opt)
		if i == m.cursor {
			line = userStyle.Render("> " + line)
		} else {
			line = "  " + gameStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	menu := b.String()
	if m.side != "" {
		menu = lipgloss.JoinHorizontal(lipgloss.Top, menu, "  ", m.side)
	}
	help := helpStyle.Render("↑/↓ or j/k to move, enter or a number to choose, q to quit.")
	return lipgloss.JoinVertical(lipgloss.Left, "", menu, help) + "\n"
}

// inputModel reads one non-empty line. Typing quit or q ends the session,
// except when reading a secret.
type inputModel struct {
	input  textinput.Model
	secret bool
	value  string
	quit   bool
	done   bool
}

func newInputModel(placeholder string, secret bool) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return inputModel{input: ti, secret: secret}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			v := strings.TrimSpace(m.input.Value())
			if v == "" {
				return m, nil
			}
			if !m.secret && (strings.EqualFold(v, "quit") || strings.EqualFold(v, "q")) {
				m.quit = true
				return m, tea.Quit
			}
			m.value = v
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.quit {
		return ""
	}
	return m.input.View() + "\n" + helpStyle.Render("enter to submit, esc to quit") + "\n"
}
