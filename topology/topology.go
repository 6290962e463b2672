// Package topology derives committee layouts from a flat address pool and
// persists them as TOML documents.
//
// A committee of degree d has 3d+1 members: one primary plus 3d peers with ids
// 1..3d. Documents are written once per degree and re-read by the fleet tooling
// in a separate invocation, so the on-disk format is the contract:
//
//	degree = 1
//
//	[primary]
//	url = "10.0.0.1:8000"
//
//	[peers]
//	[peers.1]
//	id = 1
//	url = "10.0.0.2:8000"
package topology

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Primary is the coordinating node of a committee.
type Primary struct {
	URL string `toml:"url"`
}

// Peer is a committee member other than the primary.
type Peer struct {
	ID  int64  `toml:"id"`
	URL string `toml:"url"`
}

// Topology is the configuration document for one committee.
type Topology struct {
	Degree  int             `toml:"degree"`
	Primary Primary         `toml:"primary"`
	Peers   map[string]Peer `toml:"peers"`
}

// PeerCount returns 3*degree.
func PeerCount(degree int) int {
	return 3 * degree
}

// GroupSize returns the committee size for a degree, 3*degree+1.
func GroupSize(degree int) int {
	return PeerCount(degree) + 1
}

// Build seats a committee of the given degree from the pool. pool[0] becomes
// the primary and pool[1..3d] become peers 1..3d, all listening on port.
// A pool that cannot seat the whole committee is a ConfigurationError; the
// committee is never silently truncated.
func Build(degree, port int, pool *AddressPool) (*Topology, error) {
	if degree < 0 {
		return nil, &ConfigurationError{Degree: degree, Err: errors.Errorf("degree must not be negative")}
	}
	// compare against the pool's capacity first; 3*degree+1 overflows for
	// huge degrees
	if degree > pool.Capacity() {
		return nil, &ConfigurationError{
			Degree: degree,
			Err:    errors.Wrapf(ErrPoolTooSmall, "need 3*%d+1 endpoints, have %d", degree, pool.Len()),
		}
	}
	n := PeerCount(degree)

	t := &Topology{
		Degree:  degree,
		Primary: Primary{URL: Endpoint(pool.At(0), port)},
		Peers:   make(map[string]Peer, n),
	}
	for i := 1; i <= n; i++ {
		t.Peers[strconv.Itoa(i)] = Peer{ID: int64(i), URL: Endpoint(pool.At(i), port)}
	}
	return t, nil
}

// GroupSize returns the committee size of t.
func (t *Topology) GroupSize() int {
	return GroupSize(t.Degree)
}

// SortedPeers returns the peers ordered by ascending id.
func (t *Topology) SortedPeers() []Peer {
	peers := make([]Peer, 0, len(t.Peers))
	for _, p := range t.Peers {
		peers = append(peers, p)
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i].ID < peers[j].ID })
	return peers
}

// Validate checks the document invariants: a primary url, exactly 3*degree
// peers, ids forming 1..3*degree, and each table key matching its id.
func (t *Topology) Validate() error {
	if t.Degree < 0 {
		return errors.Wrapf(ErrInvalidDocument, "negative degree %d", t.Degree)
	}
	if t.Primary.URL == "" {
		return errors.Wrap(ErrInvalidDocument, "primary url missing")
	}
	if want := PeerCount(t.Degree); len(t.Peers) != want {
		return errors.Wrapf(ErrInvalidDocument, "have %d peers, degree %d needs %d", len(t.Peers), t.Degree, want)
	}
	for key, p := range t.Peers {
		if key != strconv.FormatInt(p.ID, 10) {
			return errors.Wrapf(ErrInvalidDocument, "peer table %q holds id %d", key, p.ID)
		}
		if p.ID < 1 || p.ID > int64(PeerCount(t.Degree)) {
			return errors.Wrapf(ErrInvalidDocument, "peer id %d outside 1..%d", p.ID, PeerCount(t.Degree))
		}
		if p.URL == "" {
			return errors.Wrapf(ErrInvalidDocument, "peer %d url missing", p.ID)
		}
	}
	return nil
}

// Endpoint joins an address and a port as "host:port".
func Endpoint(addr string, port int) string {
	return fmt.Sprintf("%s:%d", addr, port)
}

// Host resolves an endpoint to the host identifier used by the remote shell:
// everything before the first colon.
func Host(url string) string {
	if i := strings.IndexByte(url, ':'); i >= 0 {
		return url[:i]
	}
	return url
}
