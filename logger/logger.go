package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how log entries are written.
type Config struct {
	// Environment "development" selects the human readable console format.
	Environment string
	Level       string
	// File, when set, adds a size-rotated log file next to stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu         sync.RWMutex
	std        = newLogger(os.Stderr, zerolog.InfoLevel)
	fileWriter *lumberjack.Logger
)

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Configure replaces the package logger according to cfg.
func Configure(cfg Config) error {
	level := zerolog.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var out io.Writer = os.Stderr
	if cfg.Environment == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}

	var fw *lumberjack.Logger
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		fw = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
			LocalTime:  true,
		}
		out = zerolog.MultiLevelWriter(out, fw)
	}

	mu.Lock()
	defer mu.Unlock()
	if fileWriter != nil {
		_ = fileWriter.Close()
	}
	fileWriter = fw
	std = newLogger(out, level)
	return nil
}

// SetOutput sends JSON entries at debug level and above to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std = newLogger(w, zerolog.DebugLevel)
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

// LogErr logs the provided error (if non-nil) and returns it unchanged.
// It is meant to be used inline when propagating errors up the call stack.
func LogErr(err error) error {
	if err == nil {
		return nil
	}
	logErrorWithSkip(err, skipForPublicAPI)
	return err
}

// LogError logs a formatted error message and returns it as an error.
func LogError(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	logErrorWithSkip(err, skipForPublicAPI)
	return err
}

// LogErrorf logs a formatted error message.
func LogErrorf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	logErrorWithSkip(err, skipForPublicAPI)
}

// Fatal logs the provided error (if non-nil) and terminates the process.
func Fatal(err error) {
	if err == nil {
		return
	}
	logErrorWithSkip(err, skipForPublicAPI)
	_ = Close()
	os.Exit(1)
}

// Error logs the provided error (if non-nil).
func Error(err error) {
	if err == nil {
		return
	}
	logErrorWithSkip(err, skipForPublicAPI)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	logWithSkip(zerolog.WarnLevel, skipForPublicAPI, fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	logWithSkip(zerolog.InfoLevel, skipForPublicAPI, fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	logWithSkip(zerolog.DebugLevel, skipForPublicAPI, fmt.Sprintf(format, args...))
}

// runtime.Callers, logWithSkip, the public function.
const skipForPublicAPI = 3

func logErrorWithSkip(err error, skip int) {
	logWithSkip(zerolog.ErrorLevel, skip+1, err.Error())
}

func logWithSkip(level zerolog.Level, skip int, message string) {
	mu.RLock()
	l := std
	mu.RUnlock()

	event := l.WithLevel(level)
	if event == nil {
		return
	}

	pcs := make([]uintptr, 1)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		event.Msg(message)
		return
	}

	frame, _ := runtime.CallersFrames(pcs).Next()
	file := filepath.Base(frame.File)
	funcName := frame.Function
	if file == "" || file == "." {
		file = "unknown"
	}
	if funcName == "" {
		funcName = "unknown"
	}

	event.Str("caller", file+":"+funcName).Msg(message)
}
