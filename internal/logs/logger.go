package logs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatText   = "text"
)

var (
	Logger  = slog.New(NewPrettyHandler(os.Stderr, nil))
	logFile *os.File
	mu      sync.Mutex
)

// Options selects where log records go and how they look.
type Options struct {
	Level  string
	Format string
	// Dir, when set, sends output to Dir/debug.log instead of Writer. The
	// terminal browser uses it so log lines never land on its screen.
	Dir    string
	Writer io.Writer
}

// Initialize replaces Logger and the slog default with a handler built from
// opts. A previously opened log file is closed.
func Initialize(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var f *os.File
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return err
		}
		logPath := filepath.Join(opts.Dir, "debug.log")
		var err error
		f, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			Logger.Error("failed to open log file", "path", logPath, "error", err)
			return err
		}
		w = f
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	Logger = slog.New(NewHandler(w, opts.Format, ParseLevel(opts.Level)))
	slog.SetDefault(Logger)
	return nil
}

// NewHandler builds the handler for a format name. Unknown names fall back
// to the pretty handler.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	hopts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case FormatJSON:
		return slog.NewJSONHandler(w, hopts)
	case FormatText:
		return slog.NewTextHandler(w, hopts)
	default:
		return NewPrettyHandler(w, hopts)
	}
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
