package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-mpss-bench/result"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRender_png(t *testing.T) {
	res := result.New()
	res.Add(result.Entry{Degree: 1, GroupSize: 4, OffChain: result.Stat{Mean: 10000, Std: 500}})
	res.Add(result.Entry{Degree: 3, GroupSize: 10, OffChain: result.Stat{Mean: 20000, Std: 1000}})

	path := filepath.Join(t.TempDir(), "offchain.png")
	r := NewErrorBarRenderer(0)
	assert.Equal(t, DefaultSize, r.Width)

	s := res.OffChainByGroupSize()
	require.NoError(t, r.Render(s, result.XLabel, s.Metric.YLabel(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestRender_throughEmitter(t *testing.T) {
	res := result.New()
	res.Add(result.Entry{Degree: 1, GroupSize: 4, Latency: result.Stat{Mean: 2.5, Std: 0.5}})

	em := &result.Emitter{OutDir: t.TempDir(), Renderer: NewErrorBarRenderer(3)}
	require.NoError(t, em.EmitAll(res))
	for _, m := range result.Metrics() {
		_, err := os.Stat(filepath.Join(em.OutDir, m.String()+".png"))
		assert.NoError(t, err, m.String())
	}
}

func TestRender_emptySeries(t *testing.T) {
	s := result.New().LatencyByGroupSize()
	err := NewErrorBarRenderer(4).Render(s, result.XLabel, s.Metric.YLabel(), filepath.Join(t.TempDir(), "latency.png"))
	require.Error(t, err)
}
