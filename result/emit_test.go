package result

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textRenderer writes a textual dump of the series so artifacts can be compared.
type textRenderer struct {
	calls []string
}

func (r *textRenderer) Render(s Series, xLabel, yLabel, path string) error {
	r.calls = append(r.calls, filepath.Base(path))
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s\n", xLabel, yLabel)
	for _, p := range s.Points {
		fmt.Fprintf(&b, "%d %g %g\n", p.X, p.Y, p.YErr)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func TestEmit_table(t *testing.T) {
	res := New()
	res.Add(Entry{Degree: 3, GroupSize: 10, Latency: Stat{Mean: 3, Std: 0.25}})
	res.Add(Entry{Degree: 1, GroupSize: 4, Latency: Stat{Mean: 2.5, Std: 0.5}})

	em := &Emitter{OutDir: filepath.Join(t.TempDir(), "plots")}
	require.NoError(t, em.Emit(res.LatencyByGroupSize()))

	data, err := os.ReadFile(filepath.Join(em.OutDir, "latency.dat"))
	require.NoError(t, err)
	assert.Equal(t, "x\ty\ty_err\n4\t2.5\t0.5\n10\t3\t0.25\n", string(data))

	_, err = os.Stat(filepath.Join(em.OutDir, "latency.png"))
	assert.True(t, os.IsNotExist(err), "no renderer, no plot")
}

func TestEmitAll_idempotent(t *testing.T) {
	root := fixture(t)

	emit := func(out string) map[string][]byte {
		res, err := Aggregate(root)
		require.NoError(t, err)
		r := &textRenderer{}
		em := &Emitter{OutDir: out, Renderer: r}
		require.NoError(t, em.EmitAll(res))
		assert.Equal(t, []string{"latency.png", "onchain.png", "offchain.png"}, r.calls)

		files := map[string][]byte{}
		for _, m := range Metrics() {
			for _, ext := range []string{".dat", ".png"} {
				name := m.String() + ext
				data, err := os.ReadFile(filepath.Join(out, name))
				require.NoError(t, err)
				files[name] = data
			}
		}
		return files
	}

	out := t.TempDir()
	first := emit(out)
	second := emit(out)
	other := emit(t.TempDir())
	assert.Equal(t, first, second)
	assert.Equal(t, first, other)

	want := "committee size|Off-chain message complexity (MB per epoch)\n" +
		"4 0.04 0.001\n" +
		fmt.Sprintf("10 0.2 %g\n", 1000*math.Sqrt(10)/1e6) +
		"25 1 0.01\n"
	assert.Equal(t, want, string(first["offchain.png"]))
}
