package hubconfigs

import (
	"github.com/reusee/hubsim/cmds"
	"github.com/reusee/hubsim/configs"
	"github.com/reusee/hubsim/vars"
)

// MaxSteps bounds the interpreter steps of one execution. Zero means unlimited.
type MaxSteps uint64

var maxStepsFlag = cmds.Var[uint64]("-max-steps", "bound the interpreter steps of one execution")

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return MaxSteps(vars.FirstNonZero(
		*maxStepsFlag,
		configs.First[uint64](loader, "max_steps"),
	))
}
