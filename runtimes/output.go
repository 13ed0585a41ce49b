package runtimes

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// OutputWriter receives the text the guest writes to its output streams,
// with the context of the execution that wrote it.
type OutputWriter interface {
	Write(ctx context.Context, text string)
	Flush()
}

// LogWriter forwards non-blank guest output to a log sink, without trailing whitespace.
type LogWriter struct {
	AddLog func(ctx context.Context, message string)
}

var _ OutputWriter = LogWriter{}

func (w LogWriter) Write(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	w.AddLog(ctx, strings.TrimRightFunc(text, unicode.IsSpace))
}

func (w LogWriter) Flush() {}

// stream exposes an OutputWriter to the guest as an object with write and flush methods.
type stream struct {
	name   string
	writer OutputWriter
}

var _ starlark.HasAttrs = new(stream)

func (s *stream) String() string {
	return "<" + s.name + ">"
}

func (s *stream) Type() string {
	return "stream"
}

func (s *stream) Freeze() {}

func (s *stream) Truth() starlark.Bool {
	return starlark.True
}

func (s *stream) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", s.Type())
}

func (s *stream) Attr(name string) (starlark.Value, error) {
	switch name {
	case "write":
		return starlark.NewBuiltin("write", s.write).BindReceiver(s), nil
	case "flush":
		return starlark.NewBuiltin("flush", s.flush).BindReceiver(s), nil
	}
	return nil, nil
}

func (s *stream) AttrNames() []string {
	return []string{"flush", "write"}
}

func (s *stream) write(
	thread *starlark.Thread,
	b *starlark.Builtin,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
		return nil, err
	}
	s.writer.Write(threadContext(thread), text)
	return starlark.MakeInt(len(text)), nil
}

func (s *stream) flush(
	thread *starlark.Thread,
	b *starlark.Builtin,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	s.writer.Flush()
	return starlark.None, nil
}

func sysModule(stdout, stderr OutputWriter) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: ModuleSys,
		Members: starlark.StringDict{
			"stdout": &stream{name: "stdout", writer: stdout},
			"stderr": &stream{name: "stderr", writer: stderr},
		},
	}
}
