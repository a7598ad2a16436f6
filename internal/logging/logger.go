package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Console receives console records; stdout when nil.
	Console io.Writer
	// File adds a rotating, append-only log file with its own level and format.
	File FileOptions
	// Attrs are attached to every record, e.g. the run identifier.
	Attrs []Attr
}

// FileOptions configures the rotating log file sink. An empty Path disables it.
type FileOptions struct {
	Path       string
	Level      string
	Format     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Session owns a logger together with the files backing it. Open it once at
// startup and Close it on shutdown so buffered file output is released.
type Session struct {
	Logger  *slog.Logger
	closers []io.Closer
}

// Close releases every file opened for the session.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Open constructs a logger session writing to the console and, when a file
// path is configured, to a rotating log file at its own level and format.
func Open(opts Options) (*Session, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	consoleHandler, err := newHandler(console, opts.Format, opts.Level)
	if err != nil {
		return nil, err
	}
	handlers := []slog.Handler{consoleHandler}
	session := &Session{}

	if strings.TrimSpace(opts.File.Path) != "" {
		format := opts.File.Format
		if strings.TrimSpace(format) == "" {
			format = opts.Format
		}
		level := opts.File.Level
		if strings.TrimSpace(level) == "" {
			level = opts.Level
		}
		file, err := openRotatingFile(opts.File)
		if err != nil {
			return nil, err
		}
		handler, err := newHandler(file, format, level)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		session.closers = append(session.closers, file)
		handlers = append(handlers, handler)
	}

	logger := slog.New(TeeHandler(handlers...))
	if len(opts.Attrs) > 0 {
		logger = logger.With(Args(opts.Attrs...)...)
	}
	session.Logger = logger
	return session, nil
}

func newHandler(w io.Writer, format, level string) (slog.Handler, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	addSource := levelVar.Level() <= slog.LevelDebug

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return newJSONHandler(w, levelVar, addSource), nil
	case "console", "":
		return newPrettyHandler(w, levelVar, addSource), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}
}

func openRotatingFile(opts FileOptions) (*lumberjack.Logger, error) {
	path := strings.TrimSpace(opts.Path)
	if err := ensureLogDir(path); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	// lumberjack opens lazily; open once now so a bad path fails at startup.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	_ = f.Close()
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
		LocalTime:  true,
	}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Key = "level"
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.MessageKey:
				attr.Key = "msg"
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}

	return slog.NewJSONHandler(w, &opts)
}
