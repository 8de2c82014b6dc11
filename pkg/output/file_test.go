package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/srodi/mosp/pkg/apperrors"
)

func TestAutoFileName(t *testing.T) {
	ts := time.Date(2024, 5, 17, 9, 30, 1, 0, time.UTC)
	if got := AutoFileName("db1", ts); got != "mosp-db1-20240517-093001.csv" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("", "a.csv"); got != "a.csv" {
		t.Fatalf("expected bare name, got %q", got)
	}
	if got := ResolvePath("/var/tmp", "a.csv"); got != filepath.Join("/var/tmp", "a.csv") {
		t.Fatalf("unexpected joined path %q", got)
	}
}

func TestAppendLineAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	a := NewAppender(path)
	for _, line := range []string{"time,h-cpu", "1,2"} {
		if err := a.AppendLine(line); err != nil {
			t.Fatalf("append %q: %v", line, err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "time,h-cpu\n1,2\n" {
		t.Fatalf("unexpected content %q", data)
	}

	// A second appender on the same file keeps existing rows.
	if err := NewAppender(path).AppendLine("3,4"); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "time,h-cpu\n1,2\n3,4\n" {
		t.Fatalf("unexpected content after reopen %q", data)
	}
}

func TestAppendLineFailureIsOutputError(t *testing.T) {
	dir := t.TempDir()
	// The target is a directory, so opening it for writing fails.
	a := NewAppender(dir)
	err := a.AppendLine("x")
	var outErr apperrors.OutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("expected OutputError, got %v", err)
	}
	if outErr.Path != dir {
		t.Fatalf("unexpected path in error: %q", outErr.Path)
	}
}
