package devices

import (
	"fmt"
	"strings"
)

type Port int

const (
	PortA Port = iota
	PortB
	PortC
	PortD
	PortE
	PortF

	numPorts = 6
)

const portLetters = "ABCDEF"

func Ports() []Port {
	ret := make([]Port, 0, numPorts)
	for i := range numPorts {
		ret = append(ret, Port(i))
	}
	return ret
}

func (p Port) Valid() bool {
	return p >= 0 && p < numPorts
}

func (p Port) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Port(%d)", int(p))
	}
	return portLetters[p : p+1]
}

func ParsePort(letter string) (Port, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) == 1 {
		if i := strings.Index(portLetters, letter); i >= 0 {
			return Port(i), nil
		}
	}
	return 0, fmt.Errorf("unknown port letter: %q", letter)
}

func (p Port) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &InvalidPortError{Port: int(p)}
	}
	return []byte(p.String()), nil
}

func (p *Port) UnmarshalText(text []byte) error {
	port, err := ParsePort(string(text))
	if err != nil {
		return err
	}
	*p = port
	return nil
}

func checkPort(port int) (Port, error) {
	p := Port(port)
	if !p.Valid() {
		return 0, &InvalidPortError{Port: port}
	}
	return p, nil
}
