package devices

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Store holds the six simulated motors, the motor pairs and the append-only log.
// All methods are safe for concurrent use.
type Store struct {
	// Now is the clock used for log timestamps. Defaults to time.Now.
	Now func() time.Time
	// OnLog, if set, observes every appended entry in append order,
	// with the context of the call that appended it.
	// It is called with the store lock held and must not call back into the store.
	OnLog func(ctx context.Context, entry LogEntry)

	mu      sync.RWMutex
	motors  [numPorts]Device
	pairs   map[int]pair
	logs    []LogEntry
	lastSeq uint64
}

func NewStore() *Store {
	return &Store{
		pairs: make(map[int]pair),
	}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// appendLog requires s.mu held for writing.
func (s *Store) appendLog(ctx context.Context, message string) {
	t := s.now()
	s.lastSeq++
	entry := LogEntry{
		Seq:       s.lastSeq,
		Time:      t,
		Timestamp: t.Format(TimestampLayout),
		Message:   message,
	}
	s.logs = append(s.logs, entry)
	if s.OnLog != nil {
		s.OnLog(ctx, entry)
	}
}

// run requires s.mu held for writing.
func (s *Store) run(ctx context.Context, port Port, velocity int) {
	s.motors[port].Velocity = velocity
	s.motors[port].Running = true
	s.appendLog(ctx, fmt.Sprintf("Motor %s running at %d deg/sec", port, velocity))
}

// stop requires s.mu held for writing.
func (s *Store) stop(ctx context.Context, port Port) {
	s.motors[port].Velocity = 0
	s.motors[port].Running = false
	s.appendLog(ctx, fmt.Sprintf("Motor %s stopped", port))
}

func (s *Store) Run(ctx context.Context, port int, velocity int) error {
	p, err := checkPort(port)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run(ctx, p, velocity)
	return nil
}

func (s *Store) Stop(ctx context.Context, port int) error {
	p, err := checkPort(port)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop(ctx, p)
	return nil
}

func (s *Store) Velocity(port int) (int, error) {
	device, err := s.Device(port)
	if err != nil {
		return 0, err
	}
	return device.Velocity, nil
}

func (s *Store) AbsolutePosition(port int) (int, error) {
	device, err := s.Device(port)
	if err != nil {
		return 0, err
	}
	return device.AbsolutePosition, nil
}

func (s *Store) RelativePosition(port int) (int, error) {
	device, err := s.Device(port)
	if err != nil {
		return 0, err
	}
	return device.RelativePosition, nil
}

func (s *Store) Device(port int) (Device, error) {
	p, err := checkPort(port)
	if err != nil {
		return Device{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.motors[p], nil
}

func (s *Store) AddLog(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLog(ctx, message)
}

func (s *Store) ClearLogs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = nil
}

// Reset restores every motor to its initial state, forgets all pairs and clears the log.
// Sequence numbers keep increasing across resets.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motors = [numPorts]Device{}
	s.pairs = make(map[int]pair)
	s.logs = nil
}

func (s *Store) Logs() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.logs)
}

// LogsSince returns the entries with a sequence number greater than seq.
func (s *Store) LogsSince(seq uint64) []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, _ := slices.BinarySearchFunc(s.logs, seq+1, func(entry LogEntry, target uint64) int {
		switch {
		case entry.Seq < target:
			return -1
		case entry.Seq > target:
			return 1
		}
		return 0
	})
	return slices.Clone(s.logs[i:])
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	motors := make(map[Port]Device, numPorts)
	for i, device := range s.motors {
		motors[Port(i)] = device
	}
	return Snapshot{
		Motors: motors,
		Logs:   slices.Clone(s.logs),
	}
}

func (s *Store) Pairs() map[int][2]Port {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make(map[int][2]Port, len(s.pairs))
	for id, p := range s.pairs {
		ret[id] = [2]Port{p.Left, p.Right}
	}
	return ret
}
