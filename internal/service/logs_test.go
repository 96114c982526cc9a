package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeLogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot.log")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLogService_Tail(t *testing.T) {
	path := writeLogFile(t, "line1\nline2\nline3\nline4\n")

	svc := NewLogService(path)

	tail, err := svc.Tail(2)

	assert.NoError(t, err)
	assert.Equal(t, "line3\nline4", tail)
}

func TestLogService_TailShorterThanRequested(t *testing.T) {
	path := writeLogFile(t, "only line\n")

	svc := NewLogService(path)

	tail, err := svc.Tail(50)

	assert.NoError(t, err)
	assert.Equal(t, "only line", tail)
}

func TestLogService_TailLargeFile(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&b, "log entry number %d with some padding text\n", i)
	}
	path := writeLogFile(t, b.String())

	svc := NewLogService(path)

	tail, err := svc.Tail(3)

	assert.NoError(t, err)
	lines := strings.Split(tail, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "log entry number 4999 with some padding text", lines[2])
}

func TestLogService_NotConfigured(t *testing.T) {
	svc := NewLogService("")

	_, err := svc.Tail(10)

	assert.Error(t, err)
}

func TestLogService_MissingFile(t *testing.T) {
	svc := NewLogService(filepath.Join(t.TempDir(), "nope.log"))

	_, err := svc.Tail(10)

	assert.Error(t, err)
}
