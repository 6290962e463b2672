package fleet

import (
	"fmt"
	"sort"
	"strings"
)

// NodeError is a remote operation that failed on a single node.
type NodeError struct {
	Node Node
	Op   string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s on %s (%s): %v", e.Op, e.Node.Name(), e.Node.Host(), e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// FanoutError collects the per-node failures of one fan-out. A fan-out keeps
// going after a node fails, so several nodes may be listed. Failures are kept
// in node id order regardless of the order they completed in.
type FanoutError struct {
	Op     string
	Failed []*NodeError
}

func newFanoutError(op string, failed []*NodeError) error {
	if len(failed) == 0 {
		return nil
	}
	sort.SliceStable(failed, func(i, j int) bool { return failed[i].Node.ID < failed[j].Node.ID })
	return &FanoutError{Op: op, Failed: failed}
}

func (e *FanoutError) Error() string {
	names := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		names[i] = f.Node.Name()
	}
	return fmt.Sprintf("%s failed on %d node(s): %s", e.Op, len(e.Failed), strings.Join(names, ", "))
}

// Nodes returns the failed node ids in ascending order.
func (e *FanoutError) Nodes() []int64 {
	ids := make([]int64, len(e.Failed))
	for i, f := range e.Failed {
		ids[i] = f.Node.ID
	}
	return ids
}
