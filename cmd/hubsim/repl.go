package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/hubsim/devices"
	"github.com/reusee/hubsim/runtimes"
)

const (
	prompt         = ">>> "
	continuePrompt = "... "
)

const reassignHint = "hint: a name from an earlier input can be read or mutated in place, " +
	"but assigning it starts a fresh global that must be set before it is read in the same input"

// sessionHint explains errors caused by reading a global of an earlier input after reassigning it.
func sessionHint(entries []devices.LogEntry) string {
	for _, entry := range entries {
		if strings.HasPrefix(entry.Message, "Error: ") &&
			strings.Contains(entry.Message, "referenced before assignment") {
			return reassignHint
		}
	}
	return ""
}

// block collects input lines until a statement is complete.
// A line opening a block, or any line while a block is open, continues the input; a blank line ends it.
type block struct {
	lines []string
}

// Add returns the complete source once the statement is finished.
func (b *block) Add(line string) (string, bool) {
	open := len(b.lines) > 0
	if open && strings.TrimSpace(line) == "" {
		return b.take(), true
	}
	if !open && strings.TrimSpace(line) == "" {
		return "", false
	}
	b.lines = append(b.lines, line)
	if open || strings.HasSuffix(strings.TrimSpace(line), ":") || strings.HasSuffix(line, "\\") {
		return "", false
	}
	return b.take(), true
}

func (b *block) Open() bool {
	return len(b.lines) > 0
}

func (b *block) take() string {
	src := strings.Join(b.lines, "\n") + "\n"
	b.lines = b.lines[:0]
	return src
}

func runREPL(ctx context.Context, host *runtimes.Host, printer *logPrinter) {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".hubsim_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	defer rl.Close()

	var input block
	for {
		if input.Open() {
			rl.SetPrompt(continuePrompt)
		} else {
			rl.SetPrompt(prompt)
		}
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			// drop the pending block
			input = block{}
			continue
		}
		if err != nil { // Ctrl-D
			break
		}

		if !input.Open() {
			switch strings.TrimSpace(line) {
			case ":reset":
				if err := host.Reset(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				continue
			case ":clear":
				host.Store().ClearLogs()
				continue
			case ":dump":
				if err := dumpSnapshot(os.Stdout, host.Store().Snapshot()); err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				continue
			}
		}

		src, ok := input.Add(line)
		if !ok {
			continue
		}
		execute(ctx, host, src)
		if hint := sessionHint(printer.Print()); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
	}
}
