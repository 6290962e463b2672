package benchmark

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// Sample is what a node measures for one epoch.
type Sample struct {
	Latency       time.Duration
	BytesOnChain  int
	BytesOffChain int
}

// Summarize reduces the per-epoch samples of one run to a Record. Means and
// population standard deviations are taken over the epochs.
func Summarize(degree, groupSize int, samples []Sample) (Record, error) {
	if len(samples) == 0 {
		return Record{}, errors.New("no benchmark samples")
	}

	latency := make([]float64, len(samples))
	onChain := make([]float64, len(samples))
	offChain := make([]float64, len(samples))
	for i, s := range samples {
		latency[i] = s.Latency.Seconds()
		onChain[i] = float64(s.BytesOnChain)
		offChain[i] = float64(s.BytesOffChain)
	}

	rec := Record{Degree: degree, GroupSize: groupSize}
	var err error
	if rec.LatencyMean, rec.LatencyStd, err = meanStd(latency); err != nil {
		return Record{}, errors.Wrap(err, "latency")
	}
	if rec.OnChainMean, rec.OnChainStd, err = meanStd(onChain); err != nil {
		return Record{}, errors.Wrap(err, "on-chain")
	}
	if rec.OffChainMean, rec.OffChainStd, err = meanStd(offChain); err != nil {
		return Record{}, errors.Wrap(err, "off-chain")
	}
	return rec, nil
}

func meanStd(data stats.Float64Data) (float64, float64, error) {
	mean, err := stats.Mean(data)
	if err != nil {
		return 0, 0, err
	}
	std, err := stats.StandardDeviation(data)
	if err != nil {
		return 0, 0, err
	}
	return mean, std, nil
}

type sampleLine struct {
	Latency  *float64 `json:"latency"`
	OnChain  *int     `json:"onChain"`
	OffChain *int     `json:"offChain"`
}

// LoadSamples reads JSON-lines samples, one epoch per line:
//
//	{"latency": 1.25, "onChain": 5120, "offChain": 81920}
//
// latency is in seconds. Blank lines are skipped.
func LoadSamples(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open samples")
	}
	defer f.Close()

	var samples []Sample
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		raw := scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		var sl sampleLine
		if err := json.Unmarshal(raw, &sl); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		if sl.Latency == nil || sl.OnChain == nil || sl.OffChain == nil {
			return nil, errors.Errorf("%s:%d: sample needs latency, onChain and offChain", path, line)
		}
		samples = append(samples, Sample{
			Latency:       time.Duration(*sl.Latency * float64(time.Second)),
			BytesOnChain:  *sl.OnChain,
			BytesOffChain: *sl.OffChain,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return samples, nil
}
