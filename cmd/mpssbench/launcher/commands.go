package launcher

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-mpss-bench/benchmark"
	"github.com/rony4d/go-mpss-bench/fleet"
	"github.com/rony4d/go-mpss-bench/flags"
	"github.com/rony4d/go-mpss-bench/integration"
	"github.com/rony4d/go-mpss-bench/plot"
	"github.com/rony4d/go-mpss-bench/result"
	"github.com/rony4d/go-mpss-bench/topology"
)

// newExecutor builds the remote transport for the fleet commands.
var newExecutor = func(cfg FleetConfig) fleet.Executor {
	exec := fleet.NewSSHExecutor(cfg.SSHKey, cfg.SSHUser)
	exec.Options = cfg.SSHOptions
	return exec
}

// env is what every command action receives.
type env struct {
	cfg Config
	log *logrus.Logger
	out io.Writer
}

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:   "generate",
			Usage:  "Write one topology document per committee degree",
			Flags:  flags.GenerateFlags(),
			Action: action(generate),
		},
		{
			Name:   "start",
			Usage:  "Start the primary, then every peer",
			Flags:  flags.FleetFlags(),
			Action: action(start),
		},
		{
			Name:   "stop",
			Usage:  "Run the stop command on every node",
			Flags:  flags.FleetFlags(),
			Action: action(stop),
		},
		{
			Name:   "follow",
			Usage:  "Stream the primary's log until it exits or the command is interrupted",
			Flags:  flags.FleetFlags(),
			Action: action(follow),
		},
		{
			Name:   "ready",
			Usage:  "Exit with status 0 once the primary has exited, 1 while it is running",
			Flags:  flags.FleetFlags(),
			Action: action(ready),
		},
		{
			Name:   "fetch",
			Usage:  "Copy every node's run logs into the log directory",
			Flags:  flags.FleetFlags(),
			Action: action(fetch),
		},
		{
			Name:   "aggregate",
			Usage:  "Aggregate run summaries into latency/onchain/offchain tables and plots",
			Flags:  flags.AggregateFlags(),
			Action: action(aggregate),
		},
		{
			Name:   "summarize",
			Usage:  "Summarize per-epoch samples into a benchmark record",
			Flags:  flags.SummarizeFlags(),
			Action: action(summarize),
		},
	}
}

// action resolves the config and the logger, then runs fn with a context that
// is cancelled on SIGINT/SIGTERM.
func action(fn func(context.Context, *env) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := MakeAllConfigs(ctx)
		if err != nil {
			return err
		}
		errOut := ctx.App.ErrWriter
		if errOut == nil {
			errOut = os.Stderr
		}
		log, err := newLogger(cfg.Logging, cfg.Sentry, errOut)
		if err != nil {
			return err
		}
		out := ctx.App.Writer
		if out == nil {
			out = os.Stdout
		}

		sctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return fn(sctx, &env{cfg: cfg, log: log, out: out})
	}
}

func generate(_ context.Context, e *env) error {
	gen := e.cfg.Generate
	preset := integration.PresetConfig{
		Name:     gen.Preset,
		Degrees:  gen.Degrees,
		Port:     gen.Port,
		AddrList: gen.AddrList,
		OutDir:   gen.OutDir,
	}
	if err := preset.Validate(); err != nil {
		return err
	}

	pool, err := topology.LoadAddressPool(gen.AddrList)
	if err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"preset":    gen.Preset,
		"endpoints": pool.Len(),
		"required":  preset.RequiredEndpoints(),
	}).Info("loaded address pool")

	paths, genErr := topology.Generate(gen.OutDir, gen.Port, pool, gen.Degrees...)
	for _, path := range paths {
		topo, err := topology.Load(path)
		if err != nil {
			return err
		}
		e.log.WithFields(logrus.Fields{
			"degree":    topo.Degree,
			"groupsize": topo.GroupSize(),
			"quorum":    topo.Quorum(),
			"path":      path,
		}).Info("wrote topology document")
	}
	return genErr
}

func (e *env) orchestrator() (*fleet.Orchestrator, error) {
	path := e.cfg.Fleet.Topology
	if path == "" {
		return nil, errors.New("no topology document given (use --topology)")
	}
	topo, err := topology.Load(path)
	if err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"topology":  path,
		"groupsize": topo.GroupSize(),
		"quorum":    topo.Quorum(),
	}).Debug("loaded topology")

	return fleet.New(topo, filepath.Base(path), newExecutor(e.cfg.Fleet),
		fleet.WithLogger(e.log),
		fleet.WithParallelism(e.cfg.Fleet.Parallelism),
		fleet.WithRemoteDir(e.cfg.Fleet.RemoteDir),
		fleet.WithStopCommand(e.cfg.Fleet.StopCommand),
	), nil
}

func start(ctx context.Context, e *env) error {
	o, err := e.orchestrator()
	if err != nil {
		return err
	}
	return o.Start(ctx)
}

func stop(ctx context.Context, e *env) error {
	o, err := e.orchestrator()
	if err != nil {
		return err
	}
	return o.Stop(ctx)
}

func follow(ctx context.Context, e *env) error {
	o, err := e.orchestrator()
	if err != nil {
		return err
	}
	err = o.Follow(ctx, e.out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func ready(ctx context.Context, e *env) error {
	o, err := e.orchestrator()
	if err != nil {
		return err
	}
	state := o.Probe(ctx)
	e.log.WithField("primary", state).Info("probed primary")
	if state != fleet.Stopped {
		return ErrNotReady
	}
	return nil
}

func fetch(ctx context.Context, e *env) error {
	o, err := e.orchestrator()
	if err != nil {
		return err
	}
	return o.FetchLogs(ctx, e.cfg.LogDir)
}

func aggregate(_ context.Context, e *env) error {
	agg := e.cfg.Aggregate
	res, err := result.Aggregate(e.cfg.LogDir,
		result.WithBenchmarkFile(agg.BenchmarkFile),
		result.WithLogger(e.log),
	)
	if err != nil {
		return err
	}
	if res.Len() == 0 {
		return errors.Errorf("no benchmark runs under %s", e.cfg.LogDir)
	}

	em := &result.Emitter{
		OutDir:   agg.PlotDir,
		Renderer: plot.NewErrorBarRenderer(agg.PlotSize),
		Log:      e.log,
	}
	return em.EmitAll(res)
}

func summarize(_ context.Context, e *env) error {
	s := e.cfg.Summarize
	if s.Samples == "" {
		return errors.New("no sample file given (use --samples)")
	}
	samples, err := benchmark.LoadSamples(s.Samples)
	if err != nil {
		return err
	}
	rec, err := benchmark.Summarize(s.Degree, topology.GroupSize(s.Degree), samples)
	if err != nil {
		return err
	}

	r, err := benchmark.NewReporter(e.cfg.LogDir, s.Node)
	if err != nil {
		return err
	}
	r.Report(rec)
	e.log.WithFields(logrus.Fields{
		"epochs":   len(samples),
		"latency":  rec.LatencyMean,
		"onchain":  common.StorageSize(rec.OnChainMean),
		"offchain": common.StorageSize(rec.OffChainMean),
		"path":     r.Path(),
	}).Info("wrote benchmark summary")
	return nil
}
