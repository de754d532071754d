// Package native loads shared libraries into the running process.
//
// On darwin, freebsd and linux it calls dlopen(3) through purego with
// RTLD_NOW|RTLD_GLOBAL, so cgo is not required. On windows it calls
// LoadLibraryEx with LOAD_WITH_ALTERED_SEARCH_PATH. Other systems report an
// unsupported platform.
package native
