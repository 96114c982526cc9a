package service

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Only the end of the file is read; logs can grow without bounding the
// reply size.
const tailReadLimit = 64 * 1024

// LogService exposes the tail of the bot's own log file for the admin
// export command
type LogService struct {
	path string
}

// NewLogService creates a log service over the given file. An empty
// path means file logging is off and Tail always fails.
func NewLogService(path string) *LogService {
	return &LogService{path: path}
}

// Tail returns up to n trailing lines of the log file
func (s *LogService) Tail(n int) (string, error) {
	if s.path == "" {
		return "", fmt.Errorf("log file not configured")
	}

	f, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat log file: %w", err)
	}

	offset := info.Size() - tailReadLimit
	if offset < 0 {
		offset = 0
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to seek log file: %w", err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read log file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if offset > 0 && len(lines) > 0 {
		// The first line after a mid-file seek is usually partial
		lines = lines[1:]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return strings.Join(lines, "\n"), nil
}
