package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "INKWELL_DEBUG"

var (
	mu      sync.Mutex
	logFile io.WriteCloser
	logger  *slog.Logger
)

// Init initializes debug logging to the specified file path.
// If path is empty, uses "debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// InitFromEnv initializes logging from INKWELL_DEBUG. It does nothing when
// the variable is unset.
func InitFromEnv() error {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil
	}
	return Init(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	setOutputLocked(f)
	return nil
}

// SetOutput routes debug output to w. Passing nil disables logging.
// Tests use this to capture log lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		logFile = nil
		logger = nil
		return
	}
	setOutputLocked(nopCloser{w})
}

func setOutputLocked(w io.WriteCloser) {
	logFile = w
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Enabled reports whether a log destination is configured.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = nil
	return err
}

// Log writes a formatted message to the debug log. It is a no-op when
// logging has not been initialized.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
