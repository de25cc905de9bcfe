package main

import (
	"context"
	"os/signal"
)

// notifyContext cancels the returned context on the first stop signal, so
// an in-flight batch marks its remaining notebooks as canceled and a watch
// session exits cleanly.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, stopSignals...)
}
