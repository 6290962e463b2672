// Package benchmark defines the per-run benchmark summary record and the
// helpers that produce it.
//
// Each node summarises its per-epoch measurements into one Record and logs it
// as a JSON line into "<node>-benchmark.log". The aggregation tooling later
// reads those files back, one per run directory.
package benchmark

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultFileName is the summary file read from every run directory: the
// record written by node 1.
const DefaultFileName = "1-benchmark.log"

// Record keys as they appear in the JSON summary.
const (
	KeyDegree       = "degree"
	KeyGroupSize    = "groupsize"
	KeyLatencyMean  = "latencyMean"
	KeyLatencyStd   = "latencyStd"
	KeyOffChainMean = "offChainMean"
	KeyOffChainStd  = "offChainStd"
	KeyOnChainMean  = "onChainMean"
	KeyOnChainStd   = "onChainStd"
)

// RequiredKeys lists every key a summary record must carry.
var RequiredKeys = []string{
	KeyDegree,
	KeyGroupSize,
	KeyLatencyMean,
	KeyLatencyStd,
	KeyOffChainMean,
	KeyOffChainStd,
	KeyOnChainMean,
	KeyOnChainStd,
}

// Record is the summary of one benchmark run. Latency is in seconds, the
// on-chain and off-chain figures are bytes per epoch per node.
type Record struct {
	Degree       int     `json:"degree"`
	GroupSize    int     `json:"groupsize"`
	LatencyMean  float64 `json:"latencyMean"`
	LatencyStd   float64 `json:"latencyStd"`
	OffChainMean float64 `json:"offChainMean"`
	OffChainStd  float64 `json:"offChainStd"`
	OnChainMean  float64 `json:"onChainMean"`
	OnChainStd   float64 `json:"onChainStd"`
}

// FileName is the summary file a node writes into its log directory.
func FileName(node string) string {
	return fmt.Sprintf("%s-benchmark.log", node)
}

// Fields returns the record as log fields, keyed like the JSON summary.
func (r Record) Fields() logrus.Fields {
	return logrus.Fields{
		KeyDegree:       r.Degree,
		KeyGroupSize:    r.GroupSize,
		KeyLatencyMean:  r.LatencyMean,
		KeyLatencyStd:   r.LatencyStd,
		KeyOffChainMean: r.OffChainMean,
		KeyOffChainStd:  r.OffChainStd,
		KeyOnChainMean:  r.OnChainMean,
		KeyOnChainStd:   r.OnChainStd,
	}
}
