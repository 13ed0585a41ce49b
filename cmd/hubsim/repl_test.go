package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/hubsim/configs"
	"github.com/reusee/hubsim/devices"
	"github.com/reusee/hubsim/modes"
	"github.com/reusee/hubsim/runtimes"
)

func TestBlock(t *testing.T) {
	var b block

	if _, ok := b.Add(""); ok {
		t.Fatal("blank line should not execute")
	}

	src, ok := b.Add("x = 1")
	if !ok || src != "x = 1\n" {
		t.Fatalf("got %q %v", src, ok)
	}

	for _, line := range []string{
		"def f():",
		"    return 1",
		"",
	} {
		src, ok = b.Add(line)
	}
	if !ok || src != "def f():\n    return 1\n" {
		t.Fatalf("got %q %v", src, ok)
	}
	if b.Open() {
		t.Fatal("should be closed")
	}

	if _, ok := b.Add("x = 1 + \\"); ok {
		t.Fatal("should continue")
	}
	if _, ok := b.Add("    2"); ok {
		t.Fatal("should continue")
	}
	src, ok = b.Add("")
	if !ok || src != "x = 1 + \\\n    2\n" {
		t.Fatalf("got %q %v", src, ok)
	}
}

func TestLogPrinter(t *testing.T) {
	store := devices.NewStore()
	buf := new(bytes.Buffer)
	printer := newLogPrinter(store, buf)

	store.AddLog(t.Context(), "a")
	if entries := printer.Print(); len(entries) != 1 || entries[0].Message != "a" {
		t.Fatalf("got %v", entries)
	}
	store.AddLog(t.Context(), "b")
	store.ClearLogs()
	store.AddLog(t.Context(), "c")
	printer.Print()
	if entries := printer.Print(); len(entries) != 0 {
		t.Fatalf("got %v", entries)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %q", lines)
	}
	if !strings.HasSuffix(lines[0], "] a") || !strings.HasSuffix(lines[1], "] c") {
		t.Fatalf("got %q", lines)
	}
}

func TestDumpSnapshot(t *testing.T) {
	store := devices.NewStore()
	if err := store.Run(t.Context(), 1, 250); err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := dumpSnapshot(buf, store.Snapshot()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"motors:",
		"B:",
		"velocity: 250",
		"running: true",
		"message: Motor B running at 250 deg/sec",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestSessionHint(t *testing.T) {
	scope := dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(configs.NewLoader(nil, "")),
	)
	host := dscope.Get[*runtimes.Host](scope)
	host.Initialize(t.Context())
	if err := host.Status().Err; err != nil {
		t.Fatal(err)
	}
	printer := newLogPrinter(host.Store(), new(bytes.Buffer))
	printer.Print()

	host.Execute(t.Context(), "count = 0\n")
	if hint := sessionHint(printer.Print()); hint != "" {
		t.Fatalf("got %q", hint)
	}
	host.Execute(t.Context(), "count += 1\n")
	if hint := sessionHint(printer.Print()); hint != reassignHint {
		t.Fatalf("got %q", hint)
	}

	// other errors get no hint
	host.Execute(t.Context(), "fail('boom')\n")
	if hint := sessionHint(printer.Print()); hint != "" {
		t.Fatalf("got %q", hint)
	}
}
