package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Logger writes structured events through zerolog.
type Logger struct {
	zl zerolog.Logger
}

var (
	rootMu sync.RWMutex
	root   = New(Config{}, os.Stderr)
)

// New builds a logger for cfg that writes to w. Unset fields take their
// defaults and an unknown level falls back to info.
func New(cfg Config, w io.Writer) *Logger {
	cfg.ApplyDefaults()
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Format == FormatConsole {
		w = consoleWriter(w, cfg.NoColor)
	}
	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return &Logger{zl: ctx.Logger()}
}

// Init replaces the root logger that Get derives from. Loggers obtained
// earlier keep writing through the previous root.
func Init(cfg Config) {
	l := New(cfg, output(cfg.Output))
	rootMu.Lock()
	root = l
	rootMu.Unlock()
}

// Root returns the logger installed by Init.
func Root() *Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root
}

// Get returns the root logger tagged with a component name.
func Get(component string) *Logger {
	return Root().WithComponent(component)
}

// WithComponent tags every event with name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{zl: l.zl.With().Str(FieldComponent, name).Logger()}
}

// WithContext adds the run ID carried by ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	id := RunIDFromContext(ctx)
	if id == "" {
		return l
	}
	return &Logger{zl: l.zl.With().Str(FieldRunID, id).Logger()}
}

func (l *Logger) Debug(msg string, fields ...map[string]any) { l.emit(zerolog.DebugLevel, msg, fields) }
func (l *Logger) Info(msg string, fields ...map[string]any)  { l.emit(zerolog.InfoLevel, msg, fields) }
func (l *Logger) Warn(msg string, fields ...map[string]any)  { l.emit(zerolog.WarnLevel, msg, fields) }
func (l *Logger) Error(msg string, fields ...map[string]any) { l.emit(zerolog.ErrorLevel, msg, fields) }

func (l *Logger) emit(level zerolog.Level, msg string, fields []map[string]any) {
	e := l.zl.WithLevel(level)
	if e == nil {
		return
	}
	for _, f := range fields {
		e = e.Fields(f)
	}
	e.Msg(msg)
}

func output(name string) io.Writer {
	if strings.EqualFold(name, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

type runIDKey struct{}

// ContextWithRunID returns a context carrying a pipeline run identifier.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFromContext returns the run identifier stored in ctx, if any.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
