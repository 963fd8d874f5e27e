package http

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var summaryBuildGroup singleflight.Group

// singleflightBuild collapses concurrent builds of the same snapshot into
// one execution while still honouring the caller's context.
func singleflightBuild(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error, bool) {
	resultChan := summaryBuildGroup.DoChan(key, func() (interface{}, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		return res.Val, res.Err, res.Shared
	}
}
