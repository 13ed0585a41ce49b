package devices

import (
	"errors"
	"fmt"
)

type InvalidPortError struct {
	Port int
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid port: %d", e.Port)
}

var (
	ErrPairNotDefined = errors.New("pair is not defined")
	ErrSamePorts      = errors.New("left and right motors must be different ports")
	ErrSteeringRange  = errors.New("steering must be between -100 and 100")
)
