package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"github.com/reusee/dscope"
	"github.com/reusee/hubsim/cmds"
	"github.com/reusee/hubsim/logs"
	"github.com/reusee/hubsim/modes"
	"github.com/reusee/hubsim/runtimes"
)

var (
	fileFlag = cmds.Var[string]("-file", "run the script at path, - for stdin")
	replFlag = cmds.Switch("-repl", "start an interactive session after the script, names from earlier inputs can be mutated but not reassigned")
	dumpFlag = cmds.Switch("-dump", "print the device state as yaml before exit")
)

func main() {
	cmds.Execute(os.Args[1:])

	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	var code int
	scope.Call(func(
		host *runtimes.Host,
		logger logs.Logger,
	) {
		code = run(ctx, host, logger)
	})
	os.Exit(code)
}

func run(ctx context.Context, host *runtimes.Host, logger logs.Logger) int {
	printer := newLogPrinter(host.Store(), os.Stdout)

	host.Initialize(ctx)
	printer.Print()
	if err := host.Status().Err; err != nil {
		logger.ErrorContext(ctx, "initialize", "error", wrap(err))
		return 1
	}

	src, err := readScript(*fileFlag)
	if err != nil {
		logger.ErrorContext(ctx, "read script", "error", wrap(err))
		return 1
	}
	if src != "" {
		execute(ctx, host, src)
		printer.Print()
	}

	interactive := *replFlag ||
		(*fileFlag == "" && readline.IsTerminal(int(os.Stdin.Fd())))
	if interactive {
		runREPL(ctx, host, printer)
	}

	if *dumpFlag {
		if err := dumpSnapshot(os.Stdout, host.Store().Snapshot()); err != nil {
			logger.ErrorContext(ctx, "dump", "error", wrap(err))
			return 1
		}
	}

	return 0
}

// execute runs src until it finishes or the process is interrupted.
func execute(ctx context.Context, host *runtimes.Host, src string) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	host.Execute(ctx, src)
}

// readScript returns the script named by path.
// An empty path reads stdin when it is not a terminal.
func readScript(path string) (string, error) {
	switch path {
	case "":
		if readline.IsTerminal(int(os.Stdin.Fd())) {
			return "", nil
		}
		fallthrough
	case "-":
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
