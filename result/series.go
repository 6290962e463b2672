package result

import (
	"math"
)

// Metric selects a derived series.
type Metric int

const (
	Latency Metric = iota
	OnChain
	OffChain
)

// XLabel is the x axis of every series.
const XLabel = "committee size"

// bytesPerMB converts off-chain byte totals to megabytes.
const bytesPerMB = 1e6

type metricSpec struct {
	name   string
	yLabel string
	point  func(Entry) Point
}

var metrics = [...]metricSpec{
	Latency: {
		name:   "latency",
		yLabel: "latency (second)",
		point: func(e Entry) Point {
			return Point{X: e.GroupSize, Y: e.Latency.Mean, YErr: e.Latency.Std}
		},
	},
	OnChain: {
		name:   "onchain",
		yLabel: "On-chain message complexity (bytes per epoch)",
		point: func(e Entry) Point {
			return Point{X: e.GroupSize, Y: e.OnChain.Mean, YErr: e.OnChain.Std}
		},
	},
	OffChain: {
		name:   "offchain",
		yLabel: "Off-chain message complexity (MB per epoch)",
		// Total traffic of the committee: the mean scales with N, the standard
		// deviation of a sum of N i.i.d. costs with sqrt(N).
		point: func(e Entry) Point {
			n := float64(e.GroupSize)
			return Point{
				X:    e.GroupSize,
				Y:    e.OffChain.Mean * n / bytesPerMB,
				YErr: e.OffChain.Std * math.Sqrt(n) / bytesPerMB,
			}
		},
	},
}

// Metrics lists every metric in emission order.
func Metrics() []Metric {
	return []Metric{Latency, OnChain, OffChain}
}

func (m Metric) spec() metricSpec {
	if m < 0 || int(m) >= len(metrics) {
		panic("result: unknown metric")
	}
	return metrics[m]
}

// String is the artifact base name of the metric.
func (m Metric) String() string {
	if m < 0 || int(m) >= len(metrics) {
		return "unknown"
	}
	return metrics[m].name
}

// YLabel is the y axis label of the metric's plot.
func (m Metric) YLabel() string { return m.spec().yLabel }

// Point is one (x, y, y_err) triple.
type Point struct {
	X    int
	Y    float64
	YErr float64
}

// Series is a metric over committee size, ordered by degree.
type Series struct {
	Metric Metric
	Points []Point
}

// Name is the artifact base name.
func (s Series) Name() string { return s.Metric.String() }

// Series derives the series of metric m from the entries.
func (r *Result) Series(m Metric) Series {
	spec := m.spec()
	entries := r.Entries()
	points := make([]Point, len(entries))
	for i, e := range entries {
		points[i] = spec.point(e)
	}
	return Series{Metric: m, Points: points}
}

// LatencyByGroupSize is latency in seconds against committee size.
func (r *Result) LatencyByGroupSize() Series { return r.Series(Latency) }

// OnChainByGroupSize is per-node on-chain bytes per epoch against committee size.
func (r *Result) OnChainByGroupSize() Series { return r.Series(OnChain) }

// OffChainByGroupSize is total committee off-chain MB per epoch against
// committee size.
func (r *Result) OffChainByGroupSize() Series { return r.Series(OffChain) }
