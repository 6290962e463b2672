package benchmark

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// ReportMessage is the log message of a summary entry.
const ReportMessage = "benchmark."

// Reporter writes summary records as JSON log lines into a node's benchmark
// file. Console output of the underlying logger is discarded; only the file
// hook sees the entries.
type Reporter struct {
	log  *logrus.Logger
	path string
}

// NewReporter creates logDir if needed and routes warn-level entries into
// <logDir>/<node>-benchmark.log. Entries are appended.
func NewReporter(logDir, node string) (*Reporter, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create log dir %s", logDir)
	}
	path := filepath.Join(logDir, FileName(node))

	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.WarnLevel)
	log.AddHook(lfshook.NewHook(lfshook.PathMap{
		logrus.WarnLevel: path,
	}, &logrus.JSONFormatter{}))

	return &Reporter{log: log, path: path}, nil
}

// Path is the file the reporter writes to.
func (r *Reporter) Path() string { return r.path }

// Report logs rec as one JSON line.
func (r *Reporter) Report(rec Record) {
	r.log.WithFields(rec.Fields()).Warn(ReportMessage)
}
