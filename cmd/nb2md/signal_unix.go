//go:build !windows

package main

import (
	"os"
	"syscall"
)

// SIGHUP is included so closing the terminal ends a --watch session.
var stopSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
