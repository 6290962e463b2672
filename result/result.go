package result

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-mpss-bench/benchmark"
)

// Result collects the entries of one aggregation pass.
type Result struct {
	entries []Entry
}

// New returns an empty Result.
func New() *Result {
	return &Result{}
}

// Add appends e.
func (r *Result) Add(e Entry) {
	r.entries = append(r.entries, e)
}

// Len is the number of entries.
func (r *Result) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the entries ordered by degree, then group size,
// then run name.
func (r *Result) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Degree != b.Degree {
			return a.Degree < b.Degree
		}
		if a.GroupSize != b.GroupSize {
			return a.GroupSize < b.GroupSize
		}
		return a.Run < b.Run
	})
	return out
}

type aggregateConfig struct {
	file string
	log  logrus.FieldLogger
}

// AggregateOption customises Aggregate.
type AggregateOption func(*aggregateConfig)

// WithBenchmarkFile sets the summary file name looked up in every run
// directory. Defaults to benchmark.DefaultFileName.
func WithBenchmarkFile(name string) AggregateOption {
	return func(c *aggregateConfig) { c.file = name }
}

// WithLogger sets the logger used to report every parsed run.
func WithLogger(log logrus.FieldLogger) AggregateOption {
	return func(c *aggregateConfig) { c.log = log }
}

// Aggregate parses the summary of every immediate subdirectory of root.
// Plain files in root are skipped. The first run that cannot be parsed fails
// the whole pass.
func Aggregate(root string, opts ...AggregateOption) (*Result, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	cfg := aggregateConfig{file: benchmark.DefaultFileName, log: discard}
	for _, opt := range opts {
		opt(&cfg)
	}

	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "read log root %s", root)
	}

	res := New()
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		e, err := ParseRunDir(filepath.Join(root, d.Name()), cfg.file)
		if err != nil {
			return nil, err
		}
		cfg.log.WithFields(logrus.Fields{
			"run":       e.Run,
			"degree":    e.Degree,
			"groupsize": e.GroupSize,
			"latency":   e.Latency.Mean,
			"onchain":   common.StorageSize(e.OnChain.Mean),
			"offchain":  common.StorageSize(e.OffChain.Mean),
		}).Info("parsed benchmark run")
		res.Add(e)
	}
	return res, nil
}
