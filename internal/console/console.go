// Package console is a line-oriented player interface for plain terminals and pipes.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tatianab/narrative-engine/internal/engine"
)

var tagPattern = regexp.MustCompile(`^\[ ([^\]]+) \]`)

// Console reads answers line by line from in and writes narration to out.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	width int

	tag     map[string]lipgloss.Style
	title   lipgloss.Style
	option  lipgloss.Style
	help    lipgloss.Style
	caption lipgloss.Style

	done    <-chan struct{}
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

var _ engine.Interface = (*Console)(nil)

type Option func(*Console)

// WithContext ends any prompt still waiting for input once ctx is done, as
// if the player had typed "quit".
func WithContext(ctx context.Context) Option {
	return func(c *Console) { c.done = ctx.Done() }
}

// New returns a console wrapping narration at width columns. Colors are only
// used when out is a terminal.
func New(in io.Reader, out io.Writer, width int, opts ...Option) *Console {
	r := lipgloss.NewRenderer(out)
	warn := r.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
	info := r.NewStyle().Foreground(lipgloss.Color("#87AFD7")).Bold(true)
	c := &Console{
		in:    bufio.NewReader(in),
		out:   out,
		width: width,
		tag: map[string]lipgloss.Style{
			"Block":       warn,
			"Game Over":   warn,
			"Pass":        r.NewStyle().Foreground(lipgloss.Color("#87D787")).Bold(true),
			"Navigate":    r.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true),
			"Inspect":     info,
			"Description": info,
		},
		title:   r.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true).Underline(true),
		option:  r.NewStyle().Foreground(lipgloss.Color("#EEEEEE")).Bold(true),
		help:    r.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
		caption: r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Narrate word-wraps text and colors its leading tag, if any.
func (c *Console) Narrate(text string) {
	fmt.Fprintln(c.out, c.render(text))
}

func (c *Console) render(text string) string {
	body := strings.TrimLeft(text, "\n")
	lead := text[:len(text)-len(body)]
	wrapped := wordwrap.String(body, c.width)

	if m := tagPattern.FindStringSubmatch(wrapped); m != nil {
		if style, ok := c.tag[m[1]]; ok {
			wrapped = style.Render(m[0]) + wrapped[len(m[0]):]
		}
	} else if strings.HasPrefix(wrapped, "Entering ") || strings.HasPrefix(wrapped, "Now Watching ") {
		wrapped = c.title.Render(wrapped)
	}
	return lead + wrapped
}

// PresentChoice lists options from 1 and reads until it gets a valid number.
func (c *Console) PresentChoice(options []string) (int, error) {
	if len(options) == 0 {
		return -1, nil
	}

	fmt.Fprintln(c.out)
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %s %s\n", c.option.Render(strconv.Itoa(i+1)+")"), opt)
	}
	for {
		line, err := c.readLine(c.caption.Render("Choose an option: "))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintln(c.out, c.help.Render(fmt.Sprintf("Enter a number from 1 to %d, or \"quit\".", len(options))))
	}
}

// PromptFreeText shows prompt and reads one non-empty line.
func (c *Console) PromptFreeText(prompt string) (string, error) {
	fmt.Fprintln(c.out, wordwrap.String(prompt, c.width))
	for {
		line, err := c.readLine(c.caption.Render("> "))
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// readLine returns the next trimmed line. "quit", "q" and end of input all
// end the session.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.read()
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(c.out)
		return "", engine.ErrQuit
	}
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			return "", engine.ErrQuit
		}
		return "", err
	}
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "quit", "q":
		return "", engine.ErrQuit
	}
	return line, nil
}

// read returns the next raw line. With a context set, the read runs in the
// background and an abandoned read is picked up by the next call.
func (c *Console) read() (string, error) {
	if c.done == nil {
		return c.in.ReadString('\n')
	}
	if c.pending == nil {
		c.pending = make(chan readResult, 1)
		go func(ch chan<- readResult) {
			line, err := c.in.ReadString('\n')
			ch <- readResult{line, err}
		}(c.pending)
	}
	select {
	case r := <-c.pending:
		c.pending = nil
		return r.line, r.err
	case <-c.done:
		return "", context.Canceled
	}
}
