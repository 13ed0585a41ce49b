package main

import (
	"fmt"
	"io"

	"github.com/reusee/hubsim/devices"
	"gopkg.in/yaml.v3"
)

// logPrinter writes store log entries not yet printed.
type logPrinter struct {
	store   *devices.Store
	w       io.Writer
	lastSeq uint64
}

func newLogPrinter(store *devices.Store, w io.Writer) *logPrinter {
	return &logPrinter{
		store: store,
		w:     w,
	}
}

// Print writes the new entries and returns them.
func (p *logPrinter) Print() []devices.LogEntry {
	entries := p.store.LogsSince(p.lastSeq)
	for _, entry := range entries {
		fmt.Fprintf(p.w, "[%s] %s\n", entry.Timestamp, entry.Message)
		p.lastSeq = entry.Seq
	}
	return entries
}

func dumpSnapshot(w io.Writer, snapshot devices.Snapshot) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(snapshot); err != nil {
		return err
	}
	return encoder.Close()
}
