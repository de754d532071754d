//go:build darwin || freebsd || linux

package native

import "github.com/ebitengine/purego"

const openCall = "dlopen"

func open(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
