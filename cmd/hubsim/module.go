package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hubsim/runtimes"
)

type Module struct {
	dscope.Module
	Runtimes runtimes.Module
}
