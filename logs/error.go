package logs

import (
	"context"
	"errors"
	"fmt"
)

func WrapRun(ctx context.Context, err error) error {
	id, ok := RunIDFrom(ctx)
	if !ok || err == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("run: %s", id))
}
