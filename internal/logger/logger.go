package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Stderr is the LOG_FILE value that sends human-readable logs to stderr.
const Stderr = "-"

// Setup builds the session logger. The game owns stdout, so logs go to a
// JSON file or, with path "-", to a console writer on stderr. The returned
// closer releases the log file.
func Setup(level, path, sessionID string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)
	switch path {
	case "":
		return zerolog.Nop(), closer, nil
	case Stderr:
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	default:
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}

	return New(w, lvl, sessionID), closer, nil
}

// New returns a logger writing to w with a timestamp and the session id on every line.
func New(w io.Writer, lvl zerolog.Level, sessionID string) zerolog.Logger {
	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if sessionID != "" {
		ctx = ctx.Str("session", sessionID)
	}
	return ctx.Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
