package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateLogFilename(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	got := GenerateLogFilename(ts)
	want := "binderops-20260314-092653-589.log"
	if got != want {
		t.Errorf("GenerateLogFilename = %q, want %q", got, want)
	}
}

func TestNewLogFileDiscard(t *testing.T) {
	lf, err := NewLogFile("", "none")
	if err != nil {
		t.Fatalf("NewLogFile: %v", err)
	}
	defer lf.Close()
	if lf.Writer() != io.Discard {
		t.Errorf("expected discard writer")
	}
	if lf.Path != "" {
		t.Errorf("expected empty path, got %q", lf.Path)
	}
}

func TestNewLogFileStderr(t *testing.T) {
	lf, err := NewLogFile("", "-")
	if err != nil {
		t.Fatalf("NewLogFile: %v", err)
	}
	defer lf.Close()
	if lf.Writer() != os.Stderr {
		t.Errorf("expected stderr writer")
	}
}

func TestNewLogFileCreatesFile(t *testing.T) {
	dir := t.TempDir()
	lf, err := NewLogFile(dir, "run.log")
	if err != nil {
		t.Fatalf("NewLogFile: %v", err)
	}
	if _, err := lf.Writer().Write([]byte("hello\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := lf.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "run.log"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing content: %q", data)
	}
}

func TestNewLogFileAutoName(t *testing.T) {
	dir := t.TempDir()
	lf, err := NewLogFile(dir, "")
	if err != nil {
		t.Fatalf("NewLogFile: %v", err)
	}
	defer lf.Close()
	base := filepath.Base(lf.Path)
	if !strings.HasPrefix(base, "binderops-") || !strings.HasSuffix(base, ".log") {
		t.Errorf("unexpected auto filename %q", base)
	}
}
