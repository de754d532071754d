// Command turnkey inspects, writes and test-loads turnkey native bundles.
//
//	turnkey platform --namespace com/example/lib
//	turnkey inspect lib/linux/amd64/turnkey.xml
//	turnkey write --bundled liba.so --bundled libb.so --load libb.so --load liba.so -o turnkey.xml
//	turnkey load com/example/lib --root ./resources
//
// Settings come from flags, TURNKEY_* environment variables and an optional
// --config file, in that order of precedence.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/wippyai/turnkey/tempfiles"
)

// Version is set via -ldflags.
var Version = "dev"

func main() {
	code := 0
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		code = 1
	}
	// staged bundles live until the process is done with them
	if err := tempfiles.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: remove staged files: %v\n", err)
		code = 1
	}
	os.Exit(code)
}
