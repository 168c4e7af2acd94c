package main

import (
	"context"
	"time"

	"github.com/binderhub-ops/binderops/internal/logging"
)

// withCmdRunLogger implements the span pattern for CLI command logging.
// It emits a start log line and returns a context with logger attributes
// attached, plus a cleanup function to emit the success or failure line.
//
// Usage:
//
//	ctx, cleanup := withCmdRunLogger(ctx, "deploy", hubName)
//	defer func() { cleanup(err) }()
//
// Log message format:
// - Start:   CMD:<operation>/S (with hub in logger attributes)
// - Success: CMD:<operation>/EOK (with elapsed in logger attributes)
// - Failure: CMD:<operation>/EFAIL (with err, elapsed in logger attributes)
//
// All logs use INFO level (mechanical recording).
func withCmdRunLogger(ctx context.Context, operation, hub string) (context.Context, func(err error)) {
	startAt := time.Now()

	logger := logging.FromContext(ctx).With("hub", hub)
	ctx = logging.WithLogger(ctx, logger)

	logger.Info(ctx, "CMD:"+operation+"/S")

	cleanup := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, "CMD:"+operation+"/EOK", "elapsed", elapsed)
			return
		}
		errStr := err.Error()
		if len(errStr) > 96 {
			errStr = errStr[:96] + "..."
		}
		logger.Info(ctx, "CMD:"+operation+"/EFAIL", "err", errStr, "elapsed", elapsed)
	}
	return ctx, cleanup
}
