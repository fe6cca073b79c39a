// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

var (
	// ErrUnknownFormat indicates a format with no registered writer.
	ErrUnknownFormat = errors.New("report: unknown format")

	// ErrNoInstance indicates a record built without its instance, which
	// the "out" format needs.
	ErrNoInstance = errors.New("report: record has no instance")
)

// WriterFunc renders one record.
type WriterFunc func(w io.Writer, r Record) error

var (
	mu      sync.RWMutex
	writers = map[string]WriterFunc{}
)

func init() {
	Register("text", writeText)
	Register("json", writeJSON)
	Register("yaml", writeYAML)
	Register("out", writeOut)
}

// Register installs fn for format; the last registration wins.
func Register(format string, fn WriterFunc) {
	mu.Lock()
	defer mu.Unlock()
	writers[format] = fn
}

// Write renders r in format.
func Write(format string, w io.Writer, r Record) error {
	mu.RLock()
	fn, ok := writers[format]
	mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w %q (have %v)", ErrUnknownFormat, format, Formats())
	}
	return fn(w, r)
}

// Formats lists the registered formats, sorted.
func Formats() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(writers))
	for f := range writers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
