package procs

// Procs runs its elements in order. A step that continues replaces itself at the head of the chain.
// The receiver is never modified, so a chain value can be run more than once.
type Procs[C any] []Proc[C]

var _ Proc[any] = Procs[any]{}

func (p Procs[C]) Run(ctx C) (Proc[C], error) {
	if len(p) == 0 {
		return nil, nil
	}
	next, err := p[0].Run(ctx)
	switch {
	case err != nil:
		return nil, err
	case next != nil:
		return append(Procs[C]{next}, p[1:]...), nil
	case len(p) == 1:
		return nil, nil
	}
	return p[1:], nil
}
