package replica

import (
	"context"

	"github.com/aretw0/replica/pkg/dataset"
	"github.com/aretw0/replica/pkg/driver"
)

// Reconstruct runs fuse_replica on req.DatasetPath with default locations
// resolved next to the running executable.
// It is a shortcut for driver.New(locator, opts...).Reconstruct(ctx, req).
func Reconstruct(ctx context.Context, req driver.Request, opts ...driver.Option) (driver.Result, error) {
	locator, err := dataset.NewLocator("")
	if err != nil {
		return driver.Result{}, err
	}
	return driver.New(locator, opts...).Reconstruct(ctx, req)
}
