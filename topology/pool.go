package topology

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// AddressPool is the ordered list of fleet endpoints. Index 0 is reserved for
// the primary, indices 1..N are handed out to peers.
type AddressPool struct {
	endpoints []string
}

// NewAddressPool copies the given endpoints into a pool.
func NewAddressPool(endpoints ...string) *AddressPool {
	cp := make([]string, len(endpoints))
	copy(cp, endpoints)
	return &AddressPool{endpoints: cp}
}

// LoadAddressPool reads one endpoint per line. Surrounding whitespace is trimmed
// and blank lines are skipped.
func LoadAddressPool(path string) (*AddressPool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Degree: -1, Path: path, Err: errors.Wrap(err, "open address list")}
	}
	defer f.Close()

	var endpoints []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		endpoints = append(endpoints, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigurationError{Degree: -1, Path: path, Err: errors.Wrap(err, "read address list")}
	}
	return &AddressPool{endpoints: endpoints}, nil
}

// Len returns the number of endpoints in the pool.
func (p *AddressPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.endpoints)
}

// At returns the endpoint at index i.
func (p *AddressPool) At(i int) string {
	return p.endpoints[i]
}

// Capacity reports the largest degree the pool can seat (-1 when even the
// primary slot is missing).
func (p *AddressPool) Capacity() int {
	if p.Len() == 0 {
		return -1
	}
	return (p.Len() - 1) / 3
}
