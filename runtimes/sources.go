package runtimes

import (
	"fmt"
	"strings"

	"github.com/reusee/hubsim/devices"
)

const (
	ModuleHubPort   = "hub.port"
	ModuleHub       = "hub"
	ModuleMotor     = "motor"
	ModuleMotorPair = "motor_pair"
	ModuleSys       = "sys"
)

// ModuleSource is the guest source of a driver module.
type ModuleSource struct {
	Name   string
	Source string
}

// ModuleSources returns the built-in driver modules in installation order.
// Each source only refers to the internal binding names, so it can be checked without booting an interpreter.
func ModuleSources() []ModuleSource {
	return []ModuleSource{
		{ModuleHubPort, hubPortSource()},
		{ModuleHub, hubSource},
		{ModuleMotor, motorSource},
		{ModuleMotorPair, motorPairSource},
	}
}

func hubPortSource() string {
	var b strings.Builder
	for _, port := range devices.Ports() {
		fmt.Fprintf(&b, "%s = %d\n", port, int(port))
	}
	return b.String()
}

const hubSource = `
def light_up(color = "white"):
    """Light up the hub."""
    ` + BindingAddLog + `("Hub light: " + str(color))

def speaker_beep(frequency = 1000, duration = 100):
    """Play a beep sound."""
    ` + BindingAddLog + `("Hub beep: %d Hz for %d ms" % (frequency, duration))

def display_text(text):
    """Display text on the hub."""
    ` + BindingAddLog + `("Hub display: " + str(text))

def status():
    """Get the state of every motor, keyed by port letter."""
    return ` + BindingHubStatus + `()
`

const motorSource = `
def run(port, velocity, *, acceleration = 1000):
    """Run the motor at a constant velocity."""
    ` + BindingMotorRun + `(port, velocity)

def stop(port, *, stop = 0):
    """Stop the motor."""
    ` + BindingMotorStop + `(port)

def velocity(port):
    """Get the current velocity of the motor."""
    return ` + BindingMotorVelocity + `(port)

def absolute_position(port):
    """Get the absolute position of the motor."""
    return ` + BindingMotorAbsolutePosition + `(port)

def relative_position(port):
    """Get the relative position of the motor."""
    return ` + BindingMotorRelativePosition + `(port)
`

const motorPairSource = `
def pair(pair, left_motor, right_motor):
    """Define a motor pair."""
    ` + BindingMotorPairPair + `(pair, left_motor, right_motor)

def move(pair, steering, *, velocity = 360, acceleration = 1000):
    """Move the motor pair with differential steering."""
    ` + BindingMotorPairMove + `(pair, steering, velocity)

def stop(pair):
    """Stop the motor pair."""
    ` + BindingMotorPairStop + `(pair)
`
