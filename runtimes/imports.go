package runtimes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// moduleSelf is the member name under which a loaded module exposes itself,
// so that `import motor` can bind the module object through load.
const moduleSelf = "*"

var (
	fromImportPattern = regexp.MustCompile(`^from\s+([A-Za-z_][\w.]*)\s+import\s+(.+)$`)
	importPattern     = regexp.MustCompile(`^import\s+(.+)$`)
	importNamePattern = regexp.MustCompile(`^([A-Za-z_][\w.]*)(?:\s+as\s+([A-Za-z_]\w*))?$`)
	openListPattern   = regexp.MustCompile(`(?:^|;)\s*from\s+[A-Za-z_][\w.]*\s+import\s+\([^)]*$`)
	nestedPattern     = regexp.MustCompile(`^\s+(?:import|from\s+[A-Za-z_][\w.]*\s+import)\s`)
)

// rewriteImports turns top-level Python import statements into load statements.
// members lists the exported names of a module, for star imports.
// A parenthesized name list may span lines; the rewritten statement takes its first line and the rest are blanked,
// so line numbers in later errors still match the source.
// Lines inside triple-quoted strings are left untouched. Imports in indented blocks are rejected.
func rewriteImports(src string, members func(module string) ([]string, bool)) (string, error) {
	lines := strings.Split(src, "\n")
	var quote string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		inString := quote != ""
		quote = scanTripleQuotes(line, quote)
		if inString || strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if code, _ := splitComment(line); nestedPattern.MatchString(code) {
				return "", fmt.Errorf("line %d: import is only allowed at top level", i+1)
			}
			continue
		}

		first := i
		code, comment := splitComment(line)
		for openListPattern.MatchString(code) && i+1 < len(lines) {
			i++
			more, _ := splitComment(lines[i])
			code += " " + strings.TrimSpace(more)
			lines[i] = ""
		}

		statements := splitStatements(code)
		changed := false
		for j, stmt := range statements {
			rewritten, ok, err := rewriteImport(strings.TrimSpace(stmt), members)
			if err != nil {
				return "", fmt.Errorf("line %d: %w", first+1, err)
			}
			if ok {
				statements[j] = rewritten
				changed = true
			}
		}
		if changed {
			for j := range statements {
				statements[j] = strings.TrimSpace(statements[j])
			}
			lines[first] = strings.Join(statements, "; ") + comment
		}
	}
	return strings.Join(lines, "\n"), nil
}

func rewriteImport(stmt string, members func(string) ([]string, bool)) (string, bool, error) {

	if m := fromImportPattern.FindStringSubmatch(stmt); m != nil {
		module := m[1]
		list := strings.TrimSpace(m[2])
		if strings.HasPrefix(list, "(") && strings.HasSuffix(list, ")") {
			list = list[1 : len(list)-1]
		}
		args := []string{strconv.Quote(module)}

		if strings.TrimSpace(list) == "*" {
			names, ok := members(module)
			if !ok {
				return "", false, fmt.Errorf("no module named %s", module)
			}
			for _, name := range names {
				args = append(args, strconv.Quote(name))
			}
			if len(names) == 0 {
				return "pass", true, nil
			}
			return "load(" + strings.Join(args, ", ") + ")", true, nil
		}

		for part := range strings.SplitSeq(list, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			nm := importNamePattern.FindStringSubmatch(part)
			if nm == nil || strings.Contains(nm[1], ".") {
				return "", false, fmt.Errorf("invalid import name: %q", part)
			}
			if nm[2] != "" {
				args = append(args, nm[2]+"="+strconv.Quote(nm[1]))
			} else {
				args = append(args, strconv.Quote(nm[1]))
			}
		}
		if len(args) == 1 {
			return "", false, fmt.Errorf("empty import list: %q", stmt)
		}
		return "load(" + strings.Join(args, ", ") + ")", true, nil
	}

	if m := importPattern.FindStringSubmatch(stmt); m != nil {
		var loads []string
		for part := range strings.SplitSeq(m[1], ",") {
			part = strings.TrimSpace(part)
			nm := importNamePattern.FindStringSubmatch(part)
			if nm == nil {
				return "", false, fmt.Errorf("invalid import: %q", part)
			}
			module, alias := nm[1], nm[2]
			if alias == "" {
				// `import hub.port` binds the top level package
				module, _, _ = strings.Cut(module, ".")
				alias = module
			}
			loads = append(loads, fmt.Sprintf("load(%s, %s=%s)",
				strconv.Quote(module),
				alias,
				strconv.Quote(moduleSelf),
			))
		}
		return strings.Join(loads, "; "), true, nil
	}

	return stmt, false, nil
}

// scanTripleQuotes returns the triple quote still open at the end of line, given the one open at its start.
func scanTripleQuotes(line string, open string) string {
	for i := 0; i < len(line); {
		rest := line[i:]
		if open != "" {
			j := strings.Index(rest, open)
			if j < 0 {
				return open
			}
			i += j + 3
			open = ""
			continue
		}
		switch {
		case strings.HasPrefix(rest, `"""`), strings.HasPrefix(rest, `'''`):
			open = rest[:3]
			i += 3
		case rest[0] == '"' || rest[0] == '\'':
			i += skipString(rest)
		case rest[0] == '#':
			return open
		default:
			i++
		}
	}
	return open
}

// skipString returns the length of the single-line string literal at the start of s.
func skipString(s string) int {
	q := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i + 1
		}
	}
	return len(s)
}

// splitComment separates a trailing comment, keeping its leading whitespace.
func splitComment(line string) (code string, comment string) {
	for i := 0; i < len(line); {
		switch line[i] {
		case '"', '\'':
			i += skipString(line[i:])
		case '#':
			j := i
			for j > 0 && (line[j-1] == ' ' || line[j-1] == '\t') {
				j--
			}
			return line[:j], line[j:]
		default:
			i++
		}
	}
	return line, ""
}

// splitStatements splits a line on semicolons outside string literals.
func splitStatements(code string) []string {
	var ret []string
	start := 0
	for i := 0; i < len(code); {
		switch code[i] {
		case '"', '\'':
			i += skipString(code[i:])
		case ';':
			ret = append(ret, code[start:i])
			i++
			start = i
		default:
			i++
		}
	}
	if rest := code[start:]; strings.TrimSpace(rest) != "" || len(ret) == 0 {
		ret = append(ret, rest)
	}
	return ret
}
