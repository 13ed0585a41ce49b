package runtimes

import (
	"testing"
)

func testMembers(module string) ([]string, bool) {
	switch module {
	case "motor":
		return []string{"run", "stop", "velocity"}, true
	case "empty":
		return nil, true
	}
	return nil, false
}

func TestRewriteImports(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"from import",
			"from hub.port import A",
			`load("hub.port", "A")`,
		},
		{
			"from import list",
			"from motor import run, stop as halt",
			`load("motor", "run", halt="stop")`,
		},
		{
			"parenthesized",
			"from motor import (run, stop)",
			`load("motor", "run", "stop")`,
		},
		{
			"star",
			"from motor import *",
			`load("motor", "run", "stop", "velocity")`,
		},
		{
			"star of empty module",
			"from empty import *",
			"pass",
		},
		{
			"import",
			"import motor",
			`load("motor", motor="*")`,
		},
		{
			"dotted import binds package",
			"import hub.port",
			`load("hub", hub="*")`,
		},
		{
			"import as",
			"import hub.port as port",
			`load("hub.port", port="*")`,
		},
		{
			"import list",
			"import motor, hub",
			`load("motor", motor="*"); load("hub", hub="*")`,
		},
		{
			"trailing comment",
			"import motor  # drive",
			`load("motor", motor="*")  # drive`,
		},
		{
			"statements",
			"import motor; motor.run(0, 1)",
			`load("motor", motor="*"); motor.run(0, 1)`,
		},
		{
			"parenthesized over lines",
			"from motor import (run,\n    stop)\nrun(0, 1)",
			"load(\"motor\", \"run\", \"stop\")\n\nrun(0, 1)",
		},
		{
			"parenthesized with trailing comma and comments",
			"from motor import (  # drive\n    run,  # start\n    stop as halt,\n)",
			"load(\"motor\", \"run\", halt=\"stop\")  # drive\n\n\n",
		},
		{
			"indented non import",
			"if True:\n    imported = 1",
			"if True:\n    imported = 1",
		},
		{
			"in string",
			"s = \"\"\"\nimport motor\n\"\"\"",
			"s = \"\"\"\nimport motor\n\"\"\"",
		},
		{
			"not an import",
			"imported = 1\nx = 'from motor import run'",
			"imported = 1\nx = 'from motor import run'",
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			got, err := rewriteImports(c.input, testMembers)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.expected {
				t.Fatalf("got %q, want %q", got, c.expected)
			}
		})
	}
}

func TestRewriteImportsErrors(t *testing.T) {
	for _, input := range []string{
		"from nope import *",
		"from motor import a.b",
		"from motor import ()",
		"import 1x",
		"from motor import (run,\n    stop",
		"if True:\n    import motor",
		"def f():\n    from motor import run",
	} {
		if _, err := rewriteImports(input, testMembers); err == nil {
			t.Fatalf("should error: %q", input)
		}
	}
}

func TestRewriteImportsErrorLine(t *testing.T) {
	_, err := rewriteImports("x = 1\nfrom motor import (\n    run,\n    a.b,\n)\nif x:\n    import motor", testMembers)
	if err == nil || err.Error() != `line 2: invalid import name: "a.b"` {
		t.Fatalf("got %v", err)
	}
	_, err = rewriteImports("x = 1\nif x:\n    import motor", testMembers)
	if err == nil || err.Error() != "line 3: import is only allowed at top level" {
		t.Fatalf("got %v", err)
	}
}

func TestScanTripleQuotes(t *testing.T) {
	if got := scanTripleQuotes(`x = """abc`, ""); got != `"""` {
		t.Fatalf("got %q", got)
	}
	if got := scanTripleQuotes(`abc""" + '''`, `"""`); got != `'''` {
		t.Fatalf("got %q", got)
	}
	if got := scanTripleQuotes(`x = "\"""" # """`, ""); got != "" {
		t.Fatalf("got %q", got)
	}
}
