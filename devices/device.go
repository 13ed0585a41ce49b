package devices

import (
	"maps"
	"slices"
	"time"
)

// Device is the simulated state of the motor attached to a port.
// AbsolutePosition and RelativePosition are reserved for kinematics; no command mutates them.
type Device struct {
	Velocity         int  `json:"velocity" yaml:"velocity"`
	AbsolutePosition int  `json:"absolute_position" yaml:"absolute_position"`
	RelativePosition int  `json:"relative_position" yaml:"relative_position"`
	Running          bool `json:"running" yaml:"running"`
}

type LogEntry struct {
	Seq       uint64    `json:"seq" yaml:"seq"`
	Time      time.Time `json:"time" yaml:"-"`
	Timestamp string    `json:"timestamp" yaml:"timestamp"`
	Message   string    `json:"message" yaml:"message"`
}

const TimestampLayout = "15:04:05"

type Snapshot struct {
	Motors map[Port]Device `json:"motors" yaml:"motors"`
	Logs   []LogEntry      `json:"logs" yaml:"logs"`
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Motors: maps.Clone(s.Motors),
		Logs:   slices.Clone(s.Logs),
	}
}

type pair struct {
	Left  Port
	Right Port
}
