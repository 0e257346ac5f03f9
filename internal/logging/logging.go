package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RingBuffer keeps the most recent log lines in memory for the /logs endpoint.
type RingBuffer struct {
	mu       sync.Mutex
	lines    []string
	maxLines int
}

// NewRingBuffer creates a buffer that retains up to maxLines entries.
func NewRingBuffer(maxLines int) *RingBuffer {
	if maxLines <= 0 {
		maxLines = 1000
	}
	return &RingBuffer{
		lines:    make([]string, 0, maxLines),
		maxLines: maxLines,
	}
}

func (b *RingBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, strings.TrimRight(string(p), "\n"))
	if len(b.lines) > b.maxLines {
		b.lines = b.lines[len(b.lines)-b.maxLines:]
	}

	return len(p), nil
}

// Lines returns a copy of the buffered log lines.
func (b *RingBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Setup configures the shared process logger. Output goes to stdout and the
// ring buffer, plus a rotating file under dir when dir is non-empty.
func Setup(level, dir string) (*logrus.Logger, *RingBuffer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	buffer := NewRingBuffer(1000)
	writers := []io.Writer{os.Stdout, buffer}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(dir, "app.log"),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}

	logger.SetOutput(io.MultiWriter(writers...))
	return logger, buffer, nil
}
