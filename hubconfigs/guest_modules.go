package hubconfigs

import (
	"github.com/reusee/hubsim/configs"
)

// GuestModules maps import names to guest source installed after the built-in modules.
// Files earlier in precedence order win per module name.
type GuestModules map[string]string

func (Module) GuestModules(
	loader configs.Loader,
) GuestModules {
	ret := make(GuestModules)
	for modules := range configs.All[map[string]string](loader, "modules") {
		for name, src := range modules {
			if _, ok := ret[name]; !ok {
				ret[name] = src
			}
		}
	}
	return ret
}
