package service

import (
	"context"
	"time"
)

// withTimeout bounds one upstream call. Every collaborator has its own timeout.
func withTimeout(ctx context.Context, millis int64) (context.Context, context.CancelFunc) {
	if millis <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(millis)*time.Millisecond)
}
