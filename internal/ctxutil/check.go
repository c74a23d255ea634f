// Package ctxutil provides context utility functions.
package ctxutil

import "context"

// Canceled reports whether ctx has been canceled or exceeded its deadline,
// returning the context error if so and nil otherwise. Operations call this
// at entry so canceled requests fail before any side effect.
//
// ctx.Err() already returns nil while Done is open, so no select is needed.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
