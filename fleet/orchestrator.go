// Package fleet drives the lifecycle of a committee's remote processes.
//
// The orchestrator fans a remote operation out to every node of a topology:
// the primary first, then the peers in ascending id order. Remote operations
// are best-effort. A failing node is reported but never stops the fan-out,
// nothing is retried, and nothing is rolled back.
package fleet

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rony4d/go-mpss-bench/topology"
)

// Node is one fan-out target. The primary has ID 0.
type Node struct {
	ID  int64
	URL string
}

// IsPrimary reports whether n is the committee primary.
func (n Node) IsPrimary() bool { return n.ID == 0 }

// Host is the remote shell target of n.
func (n Node) Host() string { return topology.Host(n.URL) }

// Name is a short label for logs and errors.
func (n Node) Name() string {
	if n.IsPrimary() {
		return "primary"
	}
	return fmt.Sprintf("peer %d", n.ID)
}

// Liveness is the outcome of probing the primary container.
type Liveness int

const (
	// Unknown covers probe output other than "true"/"false" and failed probes.
	Unknown Liveness = iota
	Running
	Stopped
)

func (l Liveness) String() string {
	switch l {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Orchestrator fans lifecycle operations out over one loaded topology.
type Orchestrator struct {
	topo        *topology.Topology
	configName  string
	exec        Executor
	log         logrus.FieldLogger
	parallelism int
	remoteDir   string
	stopCommand string
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger; the default discards output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithParallelism lets up to n peers be handled at once. The primary is always
// handled on its own before any peer. n <= 1 keeps the fan-out sequential.
func WithParallelism(n int) Option {
	return func(o *Orchestrator) { o.parallelism = n }
}

// WithRemoteDir overrides the remote scripts directory logs are fetched from.
func WithRemoteDir(dir string) Option {
	return func(o *Orchestrator) { o.remoteDir = dir }
}

// WithStopCommand overrides the command Stop runs on every node.
func WithStopCommand(cmd string) Option {
	return func(o *Orchestrator) { o.stopCommand = cmd }
}

// New returns an orchestrator for topo. configName is the document's file
// name as known on the remote hosts, e.g. "config-deg8.toml".
func New(topo *topology.Topology, configName string, exec Executor, opts ...Option) *Orchestrator {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := &Orchestrator{
		topo:        topo,
		configName:  configName,
		exec:        exec,
		log:         discard,
		parallelism: 1,
		remoteDir:   DefaultRemoteDir,
		stopCommand: DefaultStopCommand,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.WithFields(logrus.Fields{"config": configName, "degree": topo.Degree})
	return o
}

// Primary returns the primary node.
func (o *Orchestrator) Primary() Node {
	return Node{ID: 0, URL: o.topo.Primary.URL}
}

// Nodes returns the fan-out order: primary first, then peers by ascending id.
func (o *Orchestrator) Nodes() []Node {
	peers := o.topo.SortedPeers()
	nodes := make([]Node, 0, len(peers)+1)
	nodes = append(nodes, o.Primary())
	for _, p := range peers {
		nodes = append(nodes, Node{ID: p.ID, URL: p.URL})
	}
	return nodes
}

// Start issues the start script on the primary and then on every peer. There
// is no wait between the two: peers may come up before the primary is ready.
func (o *Orchestrator) Start(ctx context.Context) error {
	return o.fanout(ctx, "start", func(ctx context.Context, n Node) error {
		cmd := startNodeCommand(o.configName, n.ID)
		if n.IsPrimary() {
			cmd = startPrimaryCommand(o.configName)
		}
		out, err := o.exec.Run(ctx, n.Host(), cmd)
		o.nodeLog(n).WithField("output", strings.TrimSpace(out)).Debug("start command returned")
		return err
	})
}

// Stop runs the stop command on every node.
func (o *Orchestrator) Stop(ctx context.Context) error {
	return o.fanout(ctx, "stop", func(ctx context.Context, n Node) error {
		_, err := o.exec.Run(ctx, n.Host(), o.stopCommand)
		return err
	})
}

// Probe inspects the primary container.
func (o *Orchestrator) Probe(ctx context.Context) Liveness {
	primary := o.Primary()
	out, err := o.exec.Run(ctx, primary.Host(), inspectRunningCommand(PrimaryContainer))
	if err != nil {
		o.nodeLog(primary).WithError(err).Warn("liveness probe failed")
		return Unknown
	}
	switch strings.TrimSpace(out) {
	case "true":
		return Running
	case "false":
		return Stopped
	default:
		o.nodeLog(primary).WithField("output", out).Warn("unexpected liveness probe output")
		return Unknown
	}
}

// IsReady reports whether the benchmark logs can be downloaded, which is the
// case once the primary container has exited. An ambiguous probe is not ready.
func (o *Orchestrator) IsReady(ctx context.Context) bool {
	return o.Probe(ctx) == Stopped
}

// Follow streams the primary's log into out. It blocks until the container
// exits or ctx is cancelled.
func (o *Orchestrator) Follow(ctx context.Context, out io.Writer) error {
	primary := o.Primary()
	o.nodeLog(primary).Info("following primary log")
	if err := o.exec.Stream(ctx, primary.Host(), followLogsCommand(PrimaryContainer), out); err != nil {
		return &NodeError{Node: primary, Op: "follow", Err: err}
	}
	return nil
}

// FetchLogs copies each node's log directory for this topology into dest,
// creating dest if needed. One copy is issued per node and a failed copy does
// not prevent the remaining ones.
func (o *Orchestrator) FetchLogs(ctx context.Context, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return errors.Wrapf(err, "create log dir %s", dest)
	}
	remote := remoteLogDir(o.remoteDir, o.configName)
	local := filepath.Clean(dest)
	return o.fanout(ctx, "fetch", func(ctx context.Context, n Node) error {
		return o.exec.Copy(ctx, n.Host(), remote, local)
	})
}

func (o *Orchestrator) nodeLog(n Node) logrus.FieldLogger {
	return o.log.WithFields(logrus.Fields{"node": n.Name(), "host": n.Host()})
}

// fanout applies fn to the primary and then to the peers. Every node is
// attempted; failures are returned together as a FanoutError.
func (o *Orchestrator) fanout(ctx context.Context, op string, fn func(context.Context, Node) error) error {
	nodes := o.Nodes()
	errs := make([]error, len(nodes))

	run := func(i int) {
		n := nodes[i]
		l := o.nodeLog(n).WithField("op", op)
		l.Info("issuing remote operation")
		if err := fn(ctx, n); err != nil {
			l.WithError(err).Error("remote operation failed")
			errs[i] = err
		}
	}

	run(0)
	if o.parallelism <= 1 {
		for i := 1; i < len(nodes); i++ {
			run(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(o.parallelism)
		for i := 1; i < len(nodes); i++ {
			i := i
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	var failed []*NodeError
	for i, err := range errs {
		if err != nil {
			failed = append(failed, &NodeError{Node: nodes[i], Op: op, Err: err})
		}
	}
	return newFanoutError(op, failed)
}
