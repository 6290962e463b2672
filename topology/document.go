package topology

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileName is the deterministic document name for a degree. Generating the
// same degree twice overwrites the earlier document.
func FileName(degree int) string {
	return fmt.Sprintf("config-deg%d.toml", degree)
}

// Encode renders t as a TOML document.
func (t *Topology) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(t); err != nil {
		return nil, errors.Wrapf(err, "encode topology degree %d", t.Degree)
	}
	return buf.Bytes(), nil
}

// Save writes t into dir under FileName(t.Degree) and returns the path.
func (t *Topology) Save(dir string) (string, error) {
	data, err := t.Encode()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create config dir %s", dir)
	}
	path := filepath.Join(dir, FileName(t.Degree))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}

// Load parses a topology document. Unknown keys and documents that break the
// topology invariants are rejected.
func Load(path string) (*Topology, error) {
	var t Topology
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return nil, &ConfigurationError{Degree: -1, Path: path, Err: errors.Wrap(err, "parse toml")}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, &ConfigurationError{
			Degree: t.Degree,
			Path:   path,
			Err:    errors.Wrapf(ErrInvalidDocument, "unknown keys %v", undecoded),
		}
	}
	if !md.IsDefined("degree") {
		return nil, &ConfigurationError{Degree: -1, Path: path, Err: errors.Wrap(ErrInvalidDocument, "missing key degree")}
	}
	if err := t.Validate(); err != nil {
		return nil, &ConfigurationError{Degree: t.Degree, Path: path, Err: err}
	}
	return &t, nil
}

// Generate builds and saves one document per degree, in the order given, and
// returns the written paths. The first failure aborts the run.
func Generate(dir string, port int, pool *AddressPool, degrees ...int) ([]string, error) {
	paths := make([]string, 0, len(degrees))
	for _, d := range degrees {
		t, err := Build(d, port, pool)
		if err != nil {
			return paths, err
		}
		path, err := t.Save(dir)
		if err != nil {
			return paths, &ConfigurationError{Degree: d, Path: dir, Err: err}
		}
		paths = append(paths, path)
	}
	return paths, nil
}
