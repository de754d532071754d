// Package platform identifies the host (operating system, CPU architecture)
// pair and maps it to the resource prefix under which a library's native
// bundle for that pair is stored.
//
// # Tokens
//
// Every supported value has a fixed directory token used in resource paths:
//
//	MacOS   osx        X86      x86
//	Linux   linux      AMD64    amd64
//	Windows windows    AArch64  aarch64
//
// # Prefixes
//
// A Prefix combines a library namespace with a platform:
//
//	p, err := platform.Identify()
//	prefix := platform.MustPrefix("com/example/mylib", p)
//	path, _ := prefix.Resolve("turnkey.xml")
//	// "/com/example/mylib/linux/amd64/turnkey.xml"
//
// Unrecognized host reports are UnsupportedPlatform errors; the package never
// guesses.
package platform
