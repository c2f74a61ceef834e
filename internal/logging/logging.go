package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug    *log.Logger
	Scanner  *log.Logger
	Deletion *log.Logger
	Enabled  bool
)

// EnvVar turns on debug logging to debug.log in the working directory
const EnvVar = "FILESEARCH_DEBUG"

func init() {
	discard()

	if os.Getenv(EnvVar) == "" {
		return
	}

	if _, err := Init("debug.log"); err != nil {
		// Fallback to stderr if we can't open the file
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Scanner = log.New(os.Stderr, "[SCANNER] ", log.Ldate|log.Ltime)
		Deletion = log.New(os.Stderr, "[DELETE] ", log.Ldate|log.Ltime)
		Enabled = true
	}
}

// Init points all loggers at path, appending. An empty path leaves the
// current loggers alone. The returned closer releases the file.
func Init(path string) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	// Loggers share the file and differ only in prefix
	Debug = log.New(f, "", log.Lmicroseconds)
	Scanner = log.New(f, "[scan] ", log.Lmicroseconds|log.Lmsgprefix)
	Deletion = log.New(f, "[delete] ", log.Lmicroseconds|log.Lmsgprefix)
	Enabled = true

	return closerFunc(func() error {
		discard()
		return f.Close()
	}), nil
}

func discard() {
	Debug = log.New(io.Discard, "", 0)
	Scanner = log.New(io.Discard, "", 0)
	Deletion = log.New(io.Discard, "", 0)
	Enabled = false
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
