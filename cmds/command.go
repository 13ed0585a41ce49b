package cmds

import (
	"fmt"
	"reflect"
)

type Command struct {
	Func        reflect.Value
	Description string
	Aliases     []string
	// Hidden commands run normally but are left out of usage
	Hidden bool
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

func (c *Command) Hide() *Command {
	c.Hidden = true
	return c
}

var errorType = reflect.TypeFor[error]()

// Func wraps fn as a command. Each parameter takes one following command line word;
// fn may return an error to abort execution.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	fnType := fnValue.Type()
	switch {
	case fnType.NumOut() > 1:
		panic(fmt.Errorf("must return 0 or 1 value: %T", fn))
	case fnType.NumOut() == 1 && fnType.Out(0) != errorType:
		panic(fmt.Errorf("must return error: %T", fn))
	case fnType.IsVariadic():
		panic(fmt.Errorf("variadic function not supported: %T", fn))
	}
	for i := range fnType.NumIn() {
		if !canParse(fnType.In(i)) {
			panic(fmt.Errorf("unsupported argument type %v: %T", fnType.In(i), fn))
		}
	}

	return &Command{
		Func: fnValue,
	}
}
