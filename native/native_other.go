//go:build !darwin && !freebsd && !linux && !windows

package native

import (
	"runtime"

	"github.com/wippyai/turnkey/errors"
)

const openCall = "open"

func open(string) (uintptr, error) {
	return 0, errors.UnsupportedPlatform(errors.PhaseLoad, "no dynamic loader on "+runtime.GOOS)
}
