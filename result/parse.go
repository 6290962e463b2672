package result

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/rony4d/go-mpss-bench/benchmark"
)

// ErrNoRecord is returned when a summary file holds no record at all.
var ErrNoRecord = errors.New("no benchmark record")

// ErrNullValue is returned when a required key is present but null.
var ErrNullValue = errors.New("null value")

// ParseError reports a summary file that is missing, malformed or lacks a
// required key. It fails the whole aggregation pass.
type ParseError struct {
	Path string
	Key  string // set when a required key is missing or null
	Err  error
}

func (e *ParseError) Error() string {
	if e.Key != "" && e.Err != nil {
		return fmt.Sprintf("parse %s: key %q: %v", e.Path, e.Key, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("parse %s: missing key %q", e.Path, e.Key)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile reads a summary file. The file is a stream of JSON log lines;
// when it holds several records the last one wins.
func ParseFile(path string) (benchmark.Record, error) {
	raw, err := lastRecord(path)
	if err != nil {
		return benchmark.Record{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return benchmark.Record{}, &ParseError{Path: path, Err: err}
	}
	for _, key := range benchmark.RequiredKeys {
		v, ok := fields[key]
		if !ok {
			return benchmark.Record{}, &ParseError{Path: path, Key: key}
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return benchmark.Record{}, &ParseError{Path: path, Key: key, Err: ErrNullValue}
		}
	}

	var rec benchmark.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return benchmark.Record{}, &ParseError{Path: path, Err: err}
	}
	return rec, nil
}

// ParseRunDir parses the summary file named file inside the run directory dir.
// The entry is named after the directory.
func ParseRunDir(dir, file string) (Entry, error) {
	rec, err := ParseFile(filepath.Join(dir, file))
	if err != nil {
		return Entry{}, err
	}
	return NewEntry(filepath.Base(dir), rec), nil
}

func lastRecord(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	var last []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return nil, &ParseError{Path: path, Err: errors.Errorf("malformed record %q", line)}
		}
		last = append(last[:0], line...)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if last == nil {
		return nil, &ParseError{Path: path, Err: ErrNoRecord}
	}
	return last, nil
}
