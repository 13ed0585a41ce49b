package cmds

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/reusee/hubsim/vars"
)

// Executor maps command line words to commands.
type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}

	usage := Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help")
	ret.Define("-h", usage)

	return ret
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

// lookup resolves word to its command. A word of the form name=value also carries the first argument.
func (p *Executor) lookup(word string) (*Command, []string, error) {
	if command, ok := p.commands[word]; ok {
		return command, nil, nil
	}
	if name, value, ok := strings.Cut(word, "="); ok {
		if command, ok := p.commands[name]; ok {
			return command, []string{value}, nil
		}
	}
	return nil, nil, fmt.Errorf("unknown command: %s", word)
}

// Execute runs the commands in args from left to right.
// Each command consumes as many following words as its function takes parameters.
func (p *Executor) Execute(args []string) error {
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]
		command, words, err := p.lookup(name)
		if err != nil {
			return err
		}

		n := command.Func.Type().NumIn()
		if len(words) > n {
			return fmt.Errorf("%s: takes no value", name)
		}
		need := n - len(words)
		if len(args) < need {
			return fmt.Errorf("%s: expecting %d argument(s), got %d", name, n, len(words)+len(args))
		}
		words = append(words, args[:need]...)
		args = args[need:]

		if err := command.call(words); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

func (c *Command) call(words []string) error {
	fnType := c.Func.Type()
	in := make([]reflect.Value, len(words))
	for i, word := range words {
		value, err := parseArg(fnType.In(i), word)
		if err != nil {
			return err
		}
		in[i] = value
	}
	rets := c.Func.Call(in)
	if len(rets) == 1 && !rets[0].IsNil() {
		return rets[0].Interface().(error)
	}
	return nil
}

func canParse(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// parseArg converts one word into a value of type t, checking the range of sized numbers.
func parseArg(t reflect.Type, str string) (reflect.Value, error) {
	ret := reflect.New(t).Elem()
	var err error
	switch {

	case t.Kind() == reflect.String:
		ret.SetString(str)

	case t.Kind() == reflect.Bool:
		var v bool
		v, err = vars.ParseBool(str)
		ret.SetBool(v)

	case ret.CanInt():
		var v int64
		v, err = strconv.ParseInt(str, 10, t.Bits())
		ret.SetInt(v)

	case ret.CanUint():
		var v uint64
		v, err = strconv.ParseUint(str, 10, t.Bits())
		ret.SetUint(v)

	case ret.CanFloat():
		var v float64
		v, err = strconv.ParseFloat(str, t.Bits())
		ret.SetFloat(v)

	default:
		return ret, fmt.Errorf("unsupported type: %v", t)
	}

	if err != nil {
		return ret, fmt.Errorf("convert %s to %v: %w", str, t, err)
	}
	return ret, nil
}
