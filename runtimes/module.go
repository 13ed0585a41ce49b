package runtimes

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hubsim/devices"
	"github.com/reusee/hubsim/hubconfigs"
	"github.com/reusee/hubsim/logs"
	"github.com/reusee/hubsim/syncs"
)

type Module struct {
	dscope.Module
	Devices devices.Module
	Configs hubconfigs.Module
	Logs    logs.Module
}

// Host is not initialized; callers decide when to pay the boot cost.
func (Module) Host(
	store *devices.Store,
	logger logs.Logger,
	newRun logs.NewRun,
	maxSteps hubconfigs.MaxSteps,
	guestModules hubconfigs.GuestModules,
) *Host {
	return &Host{
		store:        store,
		logger:       logger,
		newRun:       newRun,
		maxSteps:     uint64(maxSteps),
		guestModules: guestModules,
		done:         make(chan struct{}),
		sem:          syncs.NewSemaphore(1),
	}
}
