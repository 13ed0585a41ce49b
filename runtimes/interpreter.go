package runtimes

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:               true,
	While:             true,
	TopLevelControl:   true,
	GlobalReassign:    true,
	Recursion:         true,
	LoadBindsGlobally: true,
}

// interpreter is an embedded starlark environment with a module registry.
// It is not safe for concurrent use; the host serializes access.
type interpreter struct {
	maxSteps uint64
	globals  starlark.StringDict
	modules  map[string]*starlarkstruct.Module
	stdout   OutputWriter
}

func newInterpreter(maxSteps uint64) *interpreter {
	return &interpreter{
		maxSteps: maxSteps,
		globals:  make(starlark.StringDict),
		modules:  make(map[string]*starlarkstruct.Module),
	}
}

// register adds host callables to the global binding table.
func (i *interpreter) register(bindings starlark.StringDict) error {
	for _, name := range slices.Sorted(maps.Keys(bindings)) {
		if !strings.HasPrefix(name, "_") {
			return fmt.Errorf("binding %s: internal names must start with an underscore", name)
		}
		if _, ok := i.globals[name]; ok {
			return fmt.Errorf("binding %s: already registered", name)
		}
		if _, ok := starlark.Universe[name]; ok {
			return fmt.Errorf("binding %s: shadows a builtin", name)
		}
		i.globals[name] = bindings[name]
	}
	return nil
}

// installModule evaluates src and registers its globals as the module name.
func (i *interpreter) installModule(ctx context.Context, name string, src string) error {
	if _, ok := i.modules[name]; ok {
		return fmt.Errorf("module %s: already installed", name)
	}
	globals, err := i.exec(ctx, name, src, i.globals)
	if err != nil {
		return fmt.Errorf("module %s: %w", name, err)
	}
	globals.Freeze()
	i.addModule(&starlarkstruct.Module{
		Name:    name,
		Members: globals,
	})
	return nil
}

// addModule registers module and links it with its dotted parent and children,
// so that `hub.port` is reachable as the port attribute of `hub`.
func (i *interpreter) addModule(module *starlarkstruct.Module) {
	name := module.Name
	i.modules[name] = module
	if parentName, member, ok := splitModuleName(name); ok {
		if parent, ok := i.modules[parentName]; ok {
			parent.Members[member] = module
		}
	}
	for childName, child := range i.modules {
		if parentName, member, ok := splitModuleName(childName); ok && parentName == name {
			if _, exists := module.Members[member]; !exists {
				module.Members[member] = child
			}
		}
	}
}

func splitModuleName(name string) (string, string, bool) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return "", "", false
	}
	return name[:dot], name[dot+1:], true
}

// redirectOutput routes print and the sys streams to the given writers.
func (i *interpreter) redirectOutput(stdout, stderr OutputWriter) error {
	if _, ok := i.modules[ModuleSys]; ok {
		return fmt.Errorf("module %s: already installed", ModuleSys)
	}
	i.stdout = stdout
	i.addModule(sysModule(stdout, stderr))
	return nil
}

func (i *interpreter) load(_ *starlark.Thread, name string) (starlark.StringDict, error) {
	module, ok := i.modules[name]
	if !ok {
		return nil, fmt.Errorf("no module named %s", name)
	}
	ret := maps.Clone(module.Members)
	ret[moduleSelf] = module
	return ret, nil
}

func (i *interpreter) members(name string) ([]string, bool) {
	module, ok := i.modules[name]
	if !ok {
		return nil, false
	}
	return slices.Sorted(maps.Keys(module.Members)), true
}

const contextKey = "context"

func (i *interpreter) newThread(ctx context.Context, name string) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Load: i.load,
		Print: func(thread *starlark.Thread, msg string) {
			if i.stdout != nil {
				i.stdout.Write(threadContext(thread), msg)
			}
		},
	}
	thread.SetLocal(contextKey, ctx)
	if i.maxSteps > 0 {
		thread.SetMaxExecutionSteps(i.maxSteps)
	}
	return thread
}

// threadContext returns the context the thread was started with.
func threadContext(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(contextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// exec evaluates src with predeclared names and returns the resulting globals.
// Globals are returned even when evaluation fails part way.
func (i *interpreter) exec(ctx context.Context, name string, src string, predeclared starlark.StringDict) (globals starlark.StringDict, err error) {
	if err := context.Cause(ctx); err != nil {
		return nil, err
	}

	src, err = rewriteImports(src, i.members)
	if err != nil {
		return nil, err
	}

	thread := i.newThread(ctx, name)
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	_, program, err := starlark.SourceProgramOptions(fileOptions, name, src, predeclared.Has)
	if err != nil {
		return nil, err
	}
	// Init leaves the globals unfrozen; a session keeps mutating them across executions
	globals, err = program.Init(thread, predeclared)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			err = &ScriptError{
				Message:   evalErr.Msg,
				Backtrace: evalErr.Backtrace(),
				cause:     err,
			}
		}
	}
	return globals, err
}

// ScriptError is a failure raised while evaluating guest code.
type ScriptError struct {
	Message   string
	Backtrace string
	cause     error
}

func (e *ScriptError) Error() string {
	return e.Message
}

func (e *ScriptError) Unwrap() error {
	return e.cause
}
