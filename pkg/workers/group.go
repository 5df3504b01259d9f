package workers

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type Worker interface {
	Name() string
	Start(context.Context) error
}

// Group runs all workers until the first one stops, then cancels the rest,
// waits, and reports the collected failures prefixed with the worker name.
type Group []Worker

func (g Group) Start(ctx context.Context) error {
	runCtx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	var mg multierror.Group
	for _, w := range g {
		mg.Go(func() error {
			defer cancelFn()
			if err := w.Start(runCtx); err != nil {
				return fmt.Errorf("%s: %w", w.Name(), err)
			}
			return nil
		})
	}
	return mg.Wait().ErrorOrNil()
}
