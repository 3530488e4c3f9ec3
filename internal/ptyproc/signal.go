package ptyproc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// signalNames is the accepted named-signal set. Anything else must be given
// numerically.
var signalNames = map[string]unix.Signal{
	"SIGHUP":  unix.SIGHUP,
	"SIGINT":  unix.SIGINT,
	"SIGQUIT": unix.SIGQUIT,
	"SIGKILL": unix.SIGKILL,
	"SIGTERM": unix.SIGTERM,
	"SIGUSR1": unix.SIGUSR1,
	"SIGUSR2": unix.SIGUSR2,
}

// ParseSignal resolves a signal given as a number ("9") or a name. Names are
// case-insensitive and the SIG prefix is optional.
func ParseSignal(s string) (unix.Signal, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 || n >= 64 {
			return 0, fmt.Errorf("invalid signal number: %d", n)
		}
		return unix.Signal(n), nil
	}

	name := strings.ToUpper(s)
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	sig, ok := signalNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown signal: %s", s)
	}
	return sig, nil
}
