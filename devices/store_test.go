package devices

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/hubsim/modes"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 10, 19, 9, 30, 15, 0, time.UTC)
	return func() time.Time {
		return t
	}
}

func messages(entries []LogEntry) []string {
	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, entry.Message)
	}
	return ret
}

func TestInitialState(t *testing.T) {
	store := NewStore()
	snapshot := store.Snapshot()
	if len(snapshot.Motors) != 6 {
		t.Fatalf("got %v", snapshot.Motors)
	}
	for _, port := range Ports() {
		if snapshot.Motors[port] != (Device{}) {
			t.Fatalf("got %+v", snapshot.Motors[port])
		}
	}
	if len(snapshot.Logs) != 0 {
		t.Fatalf("got %v", snapshot.Logs)
	}
}

func TestRunThenVelocity(t *testing.T) {
	store := NewStore()
	for _, port := range Ports() {
		for _, v := range []int{0, 500, -360, 1} {
			if err := store.Run(t.Context(), int(port), v); err != nil {
				t.Fatal(err)
			}
			got, err := store.Velocity(int(port))
			if err != nil {
				t.Fatal(err)
			}
			if got != v {
				t.Fatalf("port %v: got %v, want %v", port, got, v)
			}
			device, err := store.Device(int(port))
			if err != nil {
				t.Fatal(err)
			}
			if !device.Running {
				t.Fatalf("port %v not running", port)
			}
		}
	}
}

func TestStop(t *testing.T) {
	store := NewStore()
	for _, port := range Ports() {
		if err := store.Run(t.Context(), int(port), 200); err != nil {
			t.Fatal(err)
		}
		if err := store.Stop(t.Context(), int(port)); err != nil {
			t.Fatal(err)
		}
		device, err := store.Device(int(port))
		if err != nil {
			t.Fatal(err)
		}
		if device.Velocity != 0 || device.Running {
			t.Fatalf("got %+v", device)
		}
	}
}

func TestStopTwice(t *testing.T) {
	store := NewStore()
	if err := store.Run(t.Context(), 2, 100); err != nil {
		t.Fatal(err)
	}
	if err := store.Stop(t.Context(), 2); err != nil {
		t.Fatal(err)
	}
	once := store.Snapshot()
	if err := store.Stop(t.Context(), 2); err != nil {
		t.Fatal(err)
	}
	twice := store.Snapshot()
	if !reflect.DeepEqual(once.Motors, twice.Motors) {
		t.Fatalf("got %v, want %v", twice.Motors, once.Motors)
	}
	if len(twice.Logs) != len(once.Logs)+1 {
		t.Fatalf("got %v", messages(twice.Logs))
	}
	if str := fmt.Sprintf("%q", messages(twice.Logs)); str != `["Motor C running at 100 deg/sec" "Motor C stopped" "Motor C stopped"]` {
		t.Fatalf("got %s", str)
	}
}

func TestInvalidPort(t *testing.T) {
	store := NewStore()
	if err := store.Run(t.Context(), 1, 10); err != nil {
		t.Fatal(err)
	}
	before := store.Snapshot()

	for _, port := range []int{-1, 6, 7, 100, -100} {
		check := func(err error) {
			t.Helper()
			var portErr *InvalidPortError
			if !errors.As(err, &portErr) {
				t.Fatalf("got %v", err)
			}
			if portErr.Port != port {
				t.Fatalf("got %v", portErr.Port)
			}
			if err.Error() != fmt.Sprintf("invalid port: %d", port) {
				t.Fatalf("got %v", err)
			}
		}
		check(store.Run(t.Context(), port, 10))
		check(store.Stop(t.Context(), port))
		_, err := store.Velocity(port)
		check(err)
		_, err = store.AbsolutePosition(port)
		check(err)
		_, err = store.RelativePosition(port)
		check(err)
	}

	after := store.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("got %+v, want %+v", after, before)
	}
}

func TestLogEntries(t *testing.T) {
	store := NewStore()
	store.Now = fixedClock()
	type key struct{}
	var observed []LogEntry
	store.OnLog = func(ctx context.Context, entry LogEntry) {
		if ctx.Value(key{}) != entry.Seq {
			t.Fatalf("entry %d observed with context of %v", entry.Seq, ctx.Value(key{}))
		}
		observed = append(observed, entry)
	}

	store.AddLog(context.WithValue(t.Context(), key{}, uint64(1)), "hello")
	if err := store.Run(context.WithValue(t.Context(), key{}, uint64(2)), 0, 500); err != nil {
		t.Fatal(err)
	}
	if err := store.Stop(context.WithValue(t.Context(), key{}, uint64(3)), 5); err != nil {
		t.Fatal(err)
	}

	logs := store.Logs()
	if !reflect.DeepEqual(logs, observed) {
		t.Fatalf("got %v, want %v", observed, logs)
	}
	if str := fmt.Sprintf("%q", messages(logs)); str != `["hello" "Motor A running at 500 deg/sec" "Motor F stopped"]` {
		t.Fatalf("got %s", str)
	}
	for i, entry := range logs {
		if entry.Seq != uint64(i+1) {
			t.Fatalf("got %v", entry.Seq)
		}
		if entry.Timestamp != "09:30:15" {
			t.Fatalf("got %v", entry.Timestamp)
		}
	}

	since := store.LogsSince(1)
	if str := fmt.Sprintf("%q", messages(since)); str != `["Motor A running at 500 deg/sec" "Motor F stopped"]` {
		t.Fatalf("got %s", str)
	}
	if len(store.LogsSince(3)) != 0 {
		t.Fatal()
	}

	// velocity reads do not log
	if _, err := store.Velocity(0); err != nil {
		t.Fatal(err)
	}
	if len(store.Logs()) != 3 {
		t.Fatal()
	}
}

func TestClearLogs(t *testing.T) {
	store := NewStore()
	if err := store.Run(t.Context(), 3, 90); err != nil {
		t.Fatal(err)
	}
	store.ClearLogs()
	if len(store.Logs()) != 0 {
		t.Fatal()
	}
	device, err := store.Device(3)
	if err != nil {
		t.Fatal(err)
	}
	if device.Velocity != 90 || !device.Running {
		t.Fatalf("got %+v", device)
	}

	// sequence continues after clear
	store.AddLog(t.Context(), "next")
	if logs := store.Logs(); logs[0].Seq != 2 {
		t.Fatalf("got %v", logs[0].Seq)
	}
}

func TestReset(t *testing.T) {
	store := NewStore()
	for _, port := range Ports() {
		if err := store.Run(t.Context(), int(port), 100*int(port)+1); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Pair(1, 0, 1); err != nil {
		t.Fatal(err)
	}
	store.AddLog(t.Context(), "foo")

	store.Reset()

	snapshot := store.Snapshot()
	for _, port := range Ports() {
		if snapshot.Motors[port] != (Device{}) {
			t.Fatalf("got %+v", snapshot.Motors[port])
		}
	}
	if len(snapshot.Logs) != 0 {
		t.Fatalf("got %v", snapshot.Logs)
	}
	if len(store.Pairs()) != 0 {
		t.Fatalf("got %v", store.Pairs())
	}
}

func TestResetAtomic(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			for _, port := range Ports() {
				_ = store.Run(t.Context(), int(port), 10)
			}
			store.Reset()
		}
	}()

	// a reader never sees a half reset store: either some motor is running, or no log mentions running motors
	for range 1000 {
		snapshot := store.Snapshot()
		running := 0
		for _, device := range snapshot.Motors {
			if device.Running {
				running++
			}
		}
		runLogs := 0
		for _, entry := range snapshot.Logs {
			if entry.Message != "" {
				runLogs++
			}
		}
		if running != runLogs {
			close(stop)
			wg.Wait()
			t.Fatalf("running %d, logs %d", running, runLogs)
		}
	}
	close(stop)
	wg.Wait()
}

func TestSnapshotIsCopy(t *testing.T) {
	store := NewStore()
	store.AddLog(t.Context(), "a")
	snapshot := store.Snapshot()
	snapshot.Motors[PortA] = Device{Velocity: 1, Running: true}
	snapshot.Logs[0].Message = "b"

	device, err := store.Device(0)
	if err != nil {
		t.Fatal(err)
	}
	if device != (Device{}) {
		t.Fatalf("got %+v", device)
	}
	if store.Logs()[0].Message != "a" {
		t.Fatal()
	}

	clone := snapshot.Clone()
	clone.Motors[PortB] = Device{Velocity: 2}
	if snapshot.Motors[PortB].Velocity != 0 {
		t.Fatal()
	}
}

func TestModule(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		store *Store,
	) {
		if err := store.Run(t.Context(), 0, 1); err != nil {
			t.Fatal(err)
		}
		if len(store.Logs()) != 1 {
			t.Fatal()
		}
	})
}
