package check

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Emitter receives a finished report. Emitters only ever see complete
// reports; a cycle interrupted by daemon shutdown is dropped whole.
type Emitter interface {
	Emit(report *Report) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(report *Report) error

func (f EmitterFunc) Emit(report *Report) error { return f(report) }

// ndjsonRecord is the wire form of one emitted report.
type ndjsonRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
	Entries   []Entry   `json:"entries"`
}

// NDJSONEmitter writes one JSON line per report, each stamped with a unique
// id so downstream collectors can deduplicate.
type NDJSONEmitter struct {
	w io.Writer
}

// NewNDJSONEmitter wraps a writer.
func NewNDJSONEmitter(w io.Writer) *NDJSONEmitter {
	return &NDJSONEmitter{w: w}
}

func (e *NDJSONEmitter) Emit(report *Report) error {
	rec := ndjsonRecord{
		ID:        uuid.NewString(),
		Timestamp: report.Timestamp,
		Status:    report.Status(),
		Entries:   report.Entries,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// FileEmitter appends NDJSON report lines to a log file.
func FileEmitter(path string) (Emitter, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening report log: %w", err)
	}
	return NewNDJSONEmitter(f), f, nil
}

// NetEmitter ships NDJSON report lines to a TCP collector, reconnecting per
// report so a flaky collector never wedges the daemon.
func NetEmitter(addr string) Emitter {
	return EmitterFunc(func(report *Report) error {
		conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
		if err != nil {
			return fmt.Errorf("dialing report collector: %w", err)
		}
		defer conn.Close()
		return NewNDJSONEmitter(conn).Emit(report)
	})
}

// MultiEmitter fans one report out to several sinks concurrently and
// reports the first error. The fan-out is fully joined before Emit returns,
// so the daemon's single-writer discipline is preserved.
type MultiEmitter []Emitter

func (m MultiEmitter) Emit(report *Report) error {
	var g errgroup.Group
	for _, e := range m {
		g.Go(func() error { return e.Emit(report) })
	}
	return g.Wait()
}
