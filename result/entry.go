// Package result aggregates per-run benchmark summaries into series indexed
// by committee size and emits them as tables and plots.
package result

import (
	"github.com/rony4d/go-mpss-bench/benchmark"
)

// Stat is a mean with its standard deviation.
type Stat struct {
	Mean float64
	Std  float64
}

// Entry is the summary of one benchmark run. Latency is in seconds, OnChain
// and OffChain in bytes per epoch per node.
type Entry struct {
	Run       string
	Degree    int
	GroupSize int
	Latency   Stat
	OffChain  Stat
	OnChain   Stat
}

// NewEntry converts a decoded summary record of run into an Entry.
func NewEntry(run string, rec benchmark.Record) Entry {
	return Entry{
		Run:       run,
		Degree:    rec.Degree,
		GroupSize: rec.GroupSize,
		Latency:   Stat{Mean: rec.LatencyMean, Std: rec.LatencyStd},
		OffChain:  Stat{Mean: rec.OffChainMean, Std: rec.OffChainStd},
		OnChain:   Stat{Mean: rec.OnChainMean, Std: rec.OnChainStd},
	}
}
