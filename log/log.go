// Package log is the process-wide structured logger of the attribute
// encoding tools, a thin wrapper around zerolog. Library packages never log;
// only the API service and the command line tools do.
package log

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"path"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	timeFormat = "2006-01-02T15:04:05.000Z07:00"
)

var levels = map[string]zerolog.Level{
	LogLevelDebug: zerolog.DebugLevel,
	LogLevelInfo:  zerolog.InfoLevel,
	LogLevelWarn:  zerolog.WarnLevel,
	LogLevelError: zerolog.ErrorLevel,
}

var (
	current zerolog.Logger
	mu      sync.RWMutex
)

func init() {
	// $LOG_LEVEL applies to tests as well
	Init(cmp.Or(os.Getenv("LOG_LEVEL"), LogLevelError), "stderr", nil)
}

// Options describes where and how much the logger writes.
type Options struct {
	Level string
	// Console receives human readable lines.
	Console io.Writer
	// JSON, if set, receives one JSON object per line.
	JSON io.Writer
	// Errors, if set, receives a copy of warnings and errors.
	Errors  io.Writer
	NoColor bool
}

// Init sets up the global logger. The output is "stdout", "stderr" or a file
// path; a path ending in .json receives JSON lines and the console output
// goes to stdout. If errorOutput is not nil, warnings and errors are copied
// to it. Init panics on invalid arguments.
func Init(level, output string, errorOutput io.Writer) {
	opts := Options{Level: level, Errors: errorOutput}
	switch output {
	case "stdout":
		opts.Console = os.Stdout
	case "stderr":
		opts.Console = os.Stderr
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			panic(fmt.Sprintf("cannot create log output: %v", err))
		}
		opts.Console = f
		if path.Ext(output) == ".json" {
			opts.Console, opts.JSON = os.Stdout, f
		}
	}
	if err := Configure(opts); err != nil {
		panic(err.Error())
	}
	Debugw("logger ready", "level", level, "output", output)
}

// Configure replaces the global logger.
func Configure(opts Options) error {
	logger, err := build(opts)
	if err != nil {
		return err
	}
	mu.Lock()
	current = logger
	mu.Unlock()
	return nil
}

func build(opts Options) (zerolog.Logger, error) {
	lvl, ok := levels[opts.Level]
	if !ok {
		return zerolog.Logger{}, fmt.Errorf("invalid log level: %q", opts.Level)
	}
	writers := []io.Writer{console(opts.Console, opts.NoColor)}
	if opts.JSON != nil {
		writers = append(writers, opts.JSON)
	}
	if opts.Errors != nil {
		writers = append(writers, warnFilter{console(opts.Errors, true)})
	}
	out := writers[0]
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	// skip the frames of this package
	zerolog.CallerSkipFrameCount = 4
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return fmt.Sprintf("%s/%s:%d", path.Base(path.Dir(file)), path.Base(file), line)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger(), nil
}

func console(w io.Writer, noColor bool) io.Writer {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: noColor}
}

// warnFilter drops everything below the warning level.
type warnFilter struct {
	io.Writer
}

func (w warnFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.WarnLevel {
		return len(p), nil
	}
	return w.Write(p)
}

// Logger returns a copy of the global zerolog logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	return &l
}

// ValidLevel reports whether level is one of the supported log levels.
func ValidLevel(level string) bool {
	_, ok := levels[level]
	return ok
}

// Level returns the name of the current log level.
func Level() string {
	lvl := Logger().GetLevel()
	for name, l := range levels {
		if l == lvl {
			return name
		}
	}
	panic(fmt.Sprintf("invalid log level: %q", lvl))
}

func emit(lvl zerolog.Level, msg string, keyvalues []any) {
	ev := Logger().WithLevel(lvl)
	if ev == nil {
		return
	}
	if len(keyvalues) > 0 {
		ev = ev.Fields(keyvalues)
	}
	ev.Msg(msg)
}

func Debug(args ...any) { emit(zerolog.DebugLevel, fmt.Sprint(args...), nil) }
func Info(args ...any)  { emit(zerolog.InfoLevel, fmt.Sprint(args...), nil) }
func Warn(args ...any)  { emit(zerolog.WarnLevel, fmt.Sprint(args...), nil) }
func Error(args ...any) { emit(zerolog.ErrorLevel, fmt.Sprint(args...), nil) }

func Debugf(template string, args ...any) {
	emit(zerolog.DebugLevel, fmt.Sprintf(template, args...), nil)
}

func Infof(template string, args ...any) {
	emit(zerolog.InfoLevel, fmt.Sprintf(template, args...), nil)
}

func Warnf(template string, args ...any) {
	emit(zerolog.WarnLevel, fmt.Sprintf(template, args...), nil)
}

func Errorf(template string, args ...any) {
	emit(zerolog.ErrorLevel, fmt.Sprintf(template, args...), nil)
}

// Debugw logs msg with key-value pairs at debug level.
func Debugw(msg string, keyvalues ...any) { emit(zerolog.DebugLevel, msg, keyvalues) }

// Infow logs msg with key-value pairs at info level.
func Infow(msg string, keyvalues ...any) { emit(zerolog.InfoLevel, msg, keyvalues) }

// Warnw logs msg with key-value pairs at warning level.
func Warnw(msg string, keyvalues ...any) { emit(zerolog.WarnLevel, msg, keyvalues) }

// Errorw logs err and msg, plus optional key-value pairs, at error level.
func Errorw(err error, msg string, keyvalues ...any) {
	emit(zerolog.ErrorLevel, msg, append([]any{"error", err}, keyvalues...))
}

// Fatal logs at fatal level with a stack trace and exits.
func Fatal(args ...any) {
	fatal(fmt.Sprint(args...))
}

// Fatalf is the formatted version of Fatal.
func Fatalf(template string, args ...any) {
	fatal(fmt.Sprintf(template, args...))
}

func fatal(msg string) {
	Logger().Fatal().Msg(strings.TrimRight(msg, "\n") + "\n" + string(debug.Stack()))
	panic("unreachable")
}
