package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogFile manages the lifecycle of a per-run log file. The original
// deployment flow keeps a transcript of every run next to the config;
// this preserves that behavior for postmortems.
type LogFile struct {
	Path   string
	file   *os.File
	writer io.Writer
}

// NewLogFile opens a log file according to output:
//   - "":     auto-generated filename in dir
//   - "-":    stderr
//   - "none": discard
//   - path:   the given path (relative paths resolve under dir)
func NewLogFile(dir, output string) (*LogFile, error) {
	lf := &LogFile{}

	switch strings.ToLower(output) {
	case "none":
		lf.writer = io.Discard
		return lf, nil
	case "-":
		lf.writer = os.Stderr
		return lf, nil
	case "":
		lf.Path = filepath.Join(dir, GenerateLogFilename(time.Now().UTC()))
	default:
		if filepath.IsAbs(output) {
			lf.Path = output
		} else {
			lf.Path = filepath.Join(dir, output)
		}
	}

	if err := os.MkdirAll(filepath.Dir(lf.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(lf.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", lf.Path, err)
	}
	lf.file = f
	lf.writer = f
	return lf, nil
}

// Writer returns the io.Writer for log output.
func (lf *LogFile) Writer() io.Writer { return lf.writer }

// Close closes the log file if one was opened.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// GenerateLogFilename returns binderops-YYYYMMDD-HHMMSS-sss.log in UTC.
func GenerateLogFilename(t time.Time) string {
	return fmt.Sprintf("binderops-%s-%03d.log",
		t.Format("20060102-150405"),
		t.Nanosecond()/1_000_000)
}
