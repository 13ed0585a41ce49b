package procs

// Proc is one step of a chain. Run returns the proc to continue with, or nil when the step is finished.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

// Func adapts a function to Proc.
type Func[C any] func(ctx C) (Proc[C], error)

var _ Proc[any] = Func[any](nil)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return f(ctx)
}

// Step adapts a function that finishes in one run.
func Step[C any](fn func(ctx C) error) Proc[C] {
	return Func[C](func(ctx C) (Proc[C], error) {
		return nil, fn(ctx)
	})
}

// RunAll runs proc until it finishes or fails.
func RunAll[C any](ctx C, proc Proc[C]) error {
	for proc != nil {
		var err error
		proc, err = proc.Run(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
