package configs

import (
	"errors"
	"iter"
)

// First decodes the value at path from the first file defining it.
// A missing value yields the zero value; any other failure panics.
func First[T any](loader Loader, path string) T {
	return FirstOr(loader, path, *new(T))
}

func FirstOr[T any](loader Loader, path string, fallback T) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return fallback
		}
		panic(err)
	}
	return value
}

// All decodes the value at path from every file defining it, in precedence order.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.IterCueValues(path) {
			if err != nil {
				panic(err)
			}
			var v T
			if err := value.Decode(&v); err != nil {
				panic(err)
			}
			if !yield(v) {
				break
			}
		}
	}
}
