package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents logging severity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var (
	mu           sync.Mutex
	currentLevel = LevelWarn
	logger       = log.New(os.Stderr, "pomo ", log.LstdFlags|log.Lmsgprefix)
)

// SetVerbosity maps a count of -v flags onto a level.
func SetVerbosity(count int) {
	switch {
	case count <= 0:
		SetLevel(LevelWarn)
	case count == 1:
		SetLevel(LevelInfo)
	default:
		SetLevel(LevelDebug)
	}
}

// SetLevel sets the threshold.
func SetLevel(l Level) {
	mu.Lock()
	currentLevel = l
	mu.Unlock()
}

// SetOutput redirects log output; the TUI points it at a file or io.Discard.
func SetOutput(w io.Writer) {
	mu.Lock()
	logger.SetOutput(w)
	mu.Unlock()
}

// ParseLevel converts a config string.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, nil
	case "", "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelWarn, fmt.Errorf("unknown level %s", s)
	}
}

func logf(l Level, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l > currentLevel {
		return
	}
	logger.Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) { logf(LevelError, "ERR", format, args...) }

func Warnf(format string, args ...any) { logf(LevelWarn, "WARN", format, args...) }

func Infof(format string, args ...any) { logf(LevelInfo, "INFO", format, args...) }

func Debugf(format string, args ...any) { logf(LevelDebug, "DBG", format, args...) }
