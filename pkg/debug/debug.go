// Package debug provides conditional debug logging for kairo.
//
// Debug logging is enabled by setting the KAIRO_DEBUG environment variable:
//
//	KAIRO_DEBUG=1 kairo render -o circuit.png
//
// Messages go to stderr with timestamps. The TUI owns the terminal, so when it
// runs, set KAIRO_DEBUG_FILE to send them to a file instead. When disabled
// every function here is a no-op.
package debug

import (
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const prefix = "[KAIRO_DEBUG] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	file    *os.File
)

func init() {
	if os.Getenv("KAIRO_DEBUG") == "" {
		return
	}
	enabled = true
	out := io.Writer(os.Stderr)
	if path := os.Getenv("KAIRO_DEBUG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			file = f
			out = f
		}
	}
	logger = log.New(out, prefix, log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetOutput enables logging to w, or disables it when w is nil.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		enabled = false
		logger = nil
		return
	}
	enabled = true
	logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogIf writes a debug message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogTiming writes how long name took.
func LogTiming(name string, d time.Duration) {
	Log("%s took %v", name, d)
}

// LogEnterExit logs entry and exit with timing:
//
//	defer debug.LogEnterExit("render.Paint")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	Log("-> %s", name)
	start := time.Now()
	return func() {
		Log("<- %s (%v)", name, time.Since(start))
	}
}

// Close releases the debug file, if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
	}
}
