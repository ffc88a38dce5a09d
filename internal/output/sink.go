// Package output writes filtered names to the output boundary, either
// immediately or deduplicated at the end of the run.
package output

import (
	"fmt"
	"io"
	"sort"
)

// Sink receives filtered names one at a time. Close flushes anything held
// back and must be called exactly once, after the merge stream is exhausted.
type Sink interface {
	Emit(name string) error
	Close() error
}

// FlushSink writes each name the moment it arrives, with no memory of
// previously emitted names. Duplicates across batches are expected.
type FlushSink struct {
	w io.Writer
}

// NewFlushSink creates a FlushSink writing to w.
func NewFlushSink(w io.Writer) *FlushSink {
	return &FlushSink{w: w}
}

// Emit writes name followed by a newline.
func (s *FlushSink) Emit(name string) error {
	_, err := fmt.Fprintln(s.w, name)
	return err
}

// Close is a no-op; FlushSink holds nothing back.
func (s *FlushSink) Close() error { return nil }

// BufferSink accumulates unique names across the whole run and writes them on
// Close. Names are emitted in sorted order to keep output deterministic.
type BufferSink struct {
	w    io.Writer
	seen map[string]struct{}
}

// NewBufferSink creates a BufferSink writing to w on Close.
func NewBufferSink(w io.Writer) *BufferSink {
	return &BufferSink{w: w, seen: make(map[string]struct{})}
}

// Emit records name; duplicates collapse.
func (s *BufferSink) Emit(name string) error {
	s.seen[name] = struct{}{}
	return nil
}

// Close writes the unique names, one per line, sorted.
func (s *BufferSink) Close() error {
	names := make([]string, 0, len(s.seen))
	for name := range s.seen {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintln(s.w, name); err != nil {
			return err
		}
	}
	return nil
}
