//go:build windows

package native

import "golang.org/x/sys/windows"

const openCall = "LoadLibraryEx"

// open searches the library's own directory first for its dependencies, so
// DLLs staged next to each other resolve one another.
func open(path string) (uintptr, error) {
	h, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}
