package runtimes

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/reusee/hubsim/devices"
	"github.com/reusee/hubsim/logs"
	"github.com/reusee/hubsim/procs"
	"github.com/reusee/hubsim/syncs"
	"go.starlark.net/starlark"
)

const (
	MessageInitialized = "Interpreter initialized successfully"
	MessageNotReady    = "Interpreter is not ready yet"
	MessageRunning     = "--- Running code ---"
	MessageComplete    = "--- Code execution complete ---"
)

// Host owns the embedded interpreter and bridges it to the device store.
// The interpreter is only reachable through Execute.
type Host struct {
	store        *devices.Store
	logger       logs.Logger
	newRun       logs.NewRun
	maxSteps     uint64
	guestModules map[string]string

	initOnce sync.Once
	done     chan struct{}

	mu     sync.RWMutex
	state  State
	err    error
	interp *interpreter

	// serializes executions; guards session
	sem     syncs.Semaphore
	session starlark.StringDict
}

func (h *Host) Status() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Status{
		State:   h.state,
		Loading: h.state == StateUninitialized || h.state == StateInitializing,
		Ready:   h.state == StateReady,
		Err:     h.err,
	}
}

// Done is closed when initialization has finished, successfully or not.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

func (h *Host) Store() *devices.Store {
	return h.store
}

// Initialize boots the interpreter and installs the driver modules.
// Only the first call does the work; later calls wait for it.
// Failures are not returned: they leave the host in StateFailed with Status().Err set.
func (h *Host) Initialize(ctx context.Context) {
	h.initOnce.Do(func() {
		defer close(h.done)
		h.setState(StateInitializing, nil)
		h.logger.InfoContext(ctx, "initializing interpreter")

		interp := newInterpreter(h.maxSteps)
		step := func(name string, fn func(ctx context.Context) error) procs.Proc[context.Context] {
			return procs.Step(func(ctx context.Context) error {
				if err := context.Cause(ctx); err != nil {
					return err
				}
				h.logger.DebugContext(ctx, "init step", "step", name)
				return fn(ctx)
			})
		}

		err := procs.RunAll[context.Context](ctx, procs.Procs[context.Context]{

			step("register bindings", func(ctx context.Context) error {
				return interp.register(Bindings(h.store))
			}),

			step("install modules", func(ctx context.Context) error {
				for _, module := range ModuleSources() {
					if err := interp.installModule(ctx, module.Name, module.Source); err != nil {
						return err
					}
				}
				for _, name := range slices.Sorted(maps.Keys(h.guestModules)) {
					if err := interp.installModule(ctx, name, h.guestModules[name]); err != nil {
						return err
					}
				}
				return nil
			}),

			step("redirect output", func(ctx context.Context) error {
				writer := LogWriter{
					AddLog: h.store.AddLog,
				}
				return interp.redirectOutput(writer, writer)
			}),
		})

		if err != nil {
			h.setState(StateFailed, err)
			h.logger.ErrorContext(ctx, "initialize interpreter", "error", err)
			h.store.AddLog(ctx, fmt.Sprintf("Error initializing interpreter: %s", err.Error()))
			return
		}

		h.mu.Lock()
		h.interp = interp
		h.state = StateReady
		h.mu.Unlock()
		h.store.AddLog(ctx, MessageInitialized)
	})
}

func (h *Host) setState(state State, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = state
	h.err = err
}

// Execute evaluates script text in the interpreter.
// Failures are never returned; each one becomes a single log entry.
func (h *Host) Execute(ctx context.Context, src string) {
	h.mu.RLock()
	interp, ready := h.interp, h.state == StateReady
	h.mu.RUnlock()
	if !ready {
		h.store.AddLog(ctx, MessageNotReady)
		return
	}

	ctx, _ = h.newRun(ctx)
	if err := h.sem.AcquireContext(ctx); err != nil {
		h.store.AddLog(ctx, "Error: " + err.Error())
		return
	}
	defer h.sem.Release()

	h.store.AddLog(ctx, MessageRunning)

	predeclared := maps.Clone(interp.globals)
	maps.Copy(predeclared, h.session)
	globals, err := interp.exec(ctx, "<script>", src, predeclared)
	if h.session == nil {
		h.session = make(starlark.StringDict)
	}
	maps.Copy(h.session, globals)

	if err != nil {
		h.logger.InfoContext(ctx, "execution failed",
			"error", logs.WrapRun(ctx, err),
		)
		h.store.AddLog(ctx, "Error: " + err.Error())
		return
	}
	h.store.AddLog(ctx, MessageComplete)
}

// Reset forgets globals defined by earlier executions and resets the device store.
func (h *Host) Reset(ctx context.Context) error {
	if err := h.sem.AcquireContext(ctx); err != nil {
		return err
	}
	defer h.sem.Release()
	h.session = nil
	h.store.Reset()
	return nil
}
