package main

import (
	"context"
	"fmt"
	"runtime/debug"
)

// CatchPanicToContext recovers a panic and cancels the context with it, stack
// trace included. It must be deferred directly.
func CatchPanicToContext(ctxCancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		err = fmt.Errorf("%w\n%v", err, string(debug.Stack()))
		if ctxCancel != nil {
			ctxCancel(err)
		}
	}
}
