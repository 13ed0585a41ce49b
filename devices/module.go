package devices

import (
	"context"

	"github.com/reusee/dscope"
	"github.com/reusee/hubsim/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// Store is the single shared store of the scope.
// Every log entry is mirrored to the logger under the context that appended it, so the records carry its run id.
func (Module) Store(
	logger logs.Logger,
) *Store {
	store := NewStore()
	store.OnLog = func(ctx context.Context, entry LogEntry) {
		logger.DebugContext(ctx, "device log",
			"seq", entry.Seq,
			"message", entry.Message,
		)
	}
	return store
}
