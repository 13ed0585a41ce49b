package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

// WriteUsage lists the visible commands, one per line, with a placeholder for each argument.
func (p *Executor) WriteUsage(w io.Writer) {
	// aliases share the command value, print each command once under its primary name
	printed := make(map[*Command]bool)
	for _, name := range slices.Sorted(maps.Keys(p.commands)) {
		command := p.commands[name]
		if command.Hidden || printed[command] || slices.Contains(command.Aliases, name) {
			continue
		}
		printed[command] = true
		line := name
		fnType := command.Func.Type()
		for i := range fnType.NumIn() {
			line += " <" + fnType.In(i).Kind().String() + ">"
		}
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
	}
}
