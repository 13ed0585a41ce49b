package hubconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hubsim/configs"
	"github.com/reusee/hubsim/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
