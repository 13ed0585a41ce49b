package runtimes

import (
	"context"

	"github.com/reusee/hubsim/devices"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// Internal names of the host callables in the interpreter's global table.
// Guest modules forward to these; the leading underscore keeps them out of the way of guest identifiers.
const (
	BindingMotorRun              = "_motor_run"
	BindingMotorStop             = "_motor_stop"
	BindingMotorVelocity         = "_motor_velocity"
	BindingMotorAbsolutePosition = "_motor_absolute_position"
	BindingMotorRelativePosition = "_motor_relative_position"
	BindingMotorPairPair         = "_motor_pair_pair"
	BindingMotorPairMove         = "_motor_pair_move"
	BindingMotorPairStop         = "_motor_pair_stop"
	BindingAddLog                = "_add_log"
	BindingHubStatus             = "_hub_status"
)

// Bindings returns the host callables operating on store, keyed by internal name.
func Bindings(store *devices.Store) starlark.StringDict {
	return starlark.StringDict{

		BindingMotorRun: builtin(BindingMotorRun, 2, func(ctx context.Context, args []int) (starlark.Value, error) {
			return starlark.None, store.Run(ctx, args[0], args[1])
		}),

		BindingMotorStop: builtin(BindingMotorStop, 1, func(ctx context.Context, args []int) (starlark.Value, error) {
			return starlark.None, store.Stop(ctx, args[0])
		}),

		BindingMotorVelocity: builtin(BindingMotorVelocity, 1, func(_ context.Context, args []int) (starlark.Value, error) {
			return intResult(store.Velocity(args[0]))
		}),

		BindingMotorAbsolutePosition: builtin(BindingMotorAbsolutePosition, 1, func(_ context.Context, args []int) (starlark.Value, error) {
			return intResult(store.AbsolutePosition(args[0]))
		}),

		BindingMotorRelativePosition: builtin(BindingMotorRelativePosition, 1, func(_ context.Context, args []int) (starlark.Value, error) {
			return intResult(store.RelativePosition(args[0]))
		}),

		BindingMotorPairPair: builtin(BindingMotorPairPair, 3, func(_ context.Context, args []int) (starlark.Value, error) {
			return starlark.None, store.Pair(args[0], args[1], args[2])
		}),

		BindingMotorPairMove: builtin(BindingMotorPairMove, 3, func(ctx context.Context, args []int) (starlark.Value, error) {
			return starlark.None, store.MovePair(ctx, args[0], args[1], args[2])
		}),

		BindingMotorPairStop: builtin(BindingMotorPairStop, 1, func(ctx context.Context, args []int) (starlark.Value, error) {
			return starlark.None, store.StopPair(ctx, args[0])
		}),

		BindingAddLog: contextual(BindingAddLog, func(ctx context.Context) any {
			return func(message string) {
				store.AddLog(ctx, message)
			}
		}),

		BindingHubStatus: builtin(BindingHubStatus, 0, func(context.Context, []int) (starlark.Value, error) {
			return toValue(store.Snapshot().Motors)
		}),
	}
}

// builtin makes a callable taking exactly n positional int arguments.
func builtin(name string, n int, fn func(ctx context.Context, args []int) (starlark.Value, error)) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		ints := make([]int, n)
		ptrs := make([]any, n)
		for i := range ints {
			ptrs[i] = &ints[i]
		}
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, n, ptrs...); err != nil {
			return nil, err
		}
		ret, err := fn(threadContext(thread), ints)
		if err != nil {
			return nil, err
		}
		return ret, nil
	})
}

// contextual makes a callable from the function fn returns for the calling thread's context.
// Arguments and results are converted by reflection.
func contextual(name string, fn func(ctx context.Context) any) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		return starlarkutil.MakeFunc(name, fn(threadContext(thread))).CallInternal(thread, args, kwargs)
	})
}

func intResult(i int, err error) (starlark.Value, error) {
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(i), nil
}
