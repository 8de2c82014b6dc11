// Package output appends encoded rows to the results file.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/srodi/mosp/pkg/apperrors"
)

// AutoFileName returns the default results file name for hostname at t,
// e.g. mosp-db1-20240517-093001.csv.
func AutoFileName(hostname string, t time.Time) string {
	return fmt.Sprintf("mosp-%s-%s.csv", hostname, t.Format("20060102-150405"))
}

// ResolvePath joins the optional output directory with the file name.
func ResolvePath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// Appender writes whole lines to a file. The file is opened and closed on
// every call so rows already written survive a crash.
type Appender struct {
	path string
}

// NewAppender returns an Appender for path. The file is created on first write.
func NewAppender(path string) *Appender {
	return &Appender{path: path}
}

// Path returns the file the appender writes to.
func (a *Appender) Path() string {
	return a.path
}

// AppendLine writes line followed by a newline.
func (a *Appender) AppendLine(line string) (err error) {
	if dir := filepath.Dir(a.path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return apperrors.OutputError{Path: a.path, Cause: mkErr}
		}
	}
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.OutputError{Path: a.path, Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.OutputError{Path: a.path, Cause: cerr}
		}
	}()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return apperrors.OutputError{Path: a.path, Cause: err}
	}
	return nil
}
