package logs

import (
	"context"

	"github.com/google/uuid"
)

type RunID string

type runKey struct{}

func RunIDFrom(ctx context.Context) (RunID, bool) {
	id, ok := ctx.Value(runKey{}).(RunID)
	return id, ok
}

// NewRun starts a run scope. Records logged with the returned context carry the run id.
type NewRun func(ctx context.Context) (context.Context, RunID)

func (Module) NewRun(
	logger Logger,
) NewRun {
	return func(ctx context.Context) (context.Context, RunID) {
		var args []any
		if parent, ok := RunIDFrom(ctx); ok {
			args = append(args, "parent", parent)
		}
		id := RunID(uuid.NewString())
		ctx = context.WithValue(ctx, runKey{}, id)
		logger.DebugContext(ctx, "new run", args...)
		return ctx, id
	}
}
