package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var (
	mu         sync.RWMutex
	logger     zerolog.Logger
	loggerOnce sync.Once
)

// initLogger initializes the global logger to write JSON lines to stderr.
func initLogger() {
	loggerOnce.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	})
}

// Setup replaces the global logger. format "console" selects the
// human-readable writer; anything else keeps JSON lines.
func Setup(level Level, format string) {
	SetOutput(os.Stderr, format)
	SetLevel(level)
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer, format string) {
	initLogger()
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	mu.Lock()
	logger = zerolog.New(w).With().Timestamp().Logger().Level(logger.GetLevel())
	mu.Unlock()
}

func SetLevel(l Level) {
	initLogger()
	mu.Lock()
	logger = logger.Level(toZerolog(l))
	mu.Unlock()
}

// ParseLevel maps a config string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelDebug, "debug":
		return LevelDebug
	case LevelError, "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func Debug(msg string, kv ...any) {
	logWithLevel(zerolog.DebugLevel, msg, nil, kv...)
}

func Info(msg string, kv ...any) {
	logWithLevel(zerolog.InfoLevel, msg, nil, kv...)
}

func Error(msg string, err error, kv ...any) {
	logWithLevel(zerolog.ErrorLevel, msg, err, kv...)
}

func logWithLevel(level zerolog.Level, msg string, err error, kv ...any) {
	initLogger()
	mu.RLock()
	l := logger
	mu.RUnlock()

	ev := l.WithLevel(level)
	if ev == nil {
		return
	}
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Fields(pairs(kv...)).Msg(msg)
}

// pairs turns key, value, key, value ... into a field map.
// Non-string keys are skipped; a trailing key without value is ignored.
// Keys that zerolog writes itself get a "field_" prefix so they cannot
// shadow the timestamp, level, message or error.
func pairs(kv ...any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		if reserved(key) {
			key = "field_" + key
		}
		out[key] = kv[i+1]
	}
	return out
}

func reserved(key string) bool {
	switch key {
	case zerolog.TimestampFieldName, zerolog.LevelFieldName,
		zerolog.MessageFieldName, zerolog.ErrorFieldName:
		return true
	}
	return false
}

func toZerolog(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
