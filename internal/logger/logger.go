package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the editor log file, relative to the working directory.
const LogFilePath = "logs/editor.log"

const stampLayout = "2006-01-02 15:04:05"

// Logger writes structured entries through zap and keeps a timestamped copy of every message
// in memory for the console history.
type Logger struct {
	mu    sync.Mutex
	lines []string
	z     *zap.Logger
	file  *os.File
}

// New logs to stderr and appends JSON entries to LogFilePath. If the log file cannot be
// opened the logger still writes to stderr.
func New() *Logger {
	cores := []zapcore.Core{consoleCore(os.Stderr)}
	var file *os.File
	if err := os.MkdirAll(filepath.Dir(LogFilePath), 0755); err == nil {
		if f, err := os.OpenFile(LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			file = f
			enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
			cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.DebugLevel))
		}
	}
	l := build(zapcore.NewTee(cores...))
	l.file = file
	return l
}

// NewWithWriter logs human-readable entries to w only. Tests and the CLI's quiet mode use it.
func NewWithWriter(w io.Writer) *Logger {
	return build(consoleCore(w))
}

// Nop keeps the in-memory history but writes nowhere.
func Nop() *Logger {
	return build(consoleCore(io.Discard))
}

func consoleCore(w io.Writer) zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(stampLayout)
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), zapcore.DebugLevel)
}

func build(core zapcore.Core) *Logger {
	l := &Logger{lines: make([]string, 0)}
	l.z = zap.New(core, zap.Hooks(l.remember))
	return l
}

// remember is the zap hook that records each entry as "[timestamp] LEVEL message".
func (l *Logger) remember(e zapcore.Entry) error {
	stamped := "[" + e.Time.Format(stampLayout) + "] " + e.Level.CapitalString() + " " + e.Message
	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()
	return nil
}

func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }

// Log records a plain line at info level, e.g. a command typed into the console.
func (l *Logger) Log(line string) {
	l.z.Info(line)
}

// Zap exposes the underlying logger for packages that take a *zap.Logger.
func (l *Logger) Zap() *zap.Logger { return l.z }

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.z.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
