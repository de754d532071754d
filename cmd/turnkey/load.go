package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/turnkey"
	"github.com/wippyai/turnkey/wasm"
)

func newLoadCommand(a *app) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "load NAMESPACE",
		Short: "Unpack and load a bundle from a resource directory",
		Long: `Run the full unpack-and-load sequence for NAMESPACE against the resource
tree under --root, then print what was staged and loaded.

--loader native loads shared libraries into this process; --loader wasm
instantiates WebAssembly modules instead. Staged files are removed on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := &turnkey.Config{TempDir: a.cfg.TempDir}

			if a.cfg.Loader == "wasm" {
				loader, err := wasm.New(ctx)
				if err != nil {
					return err
				}
				defer loader.Close(ctx)
				cfg.Loader = loader
			}

			res, err := turnkey.LoadWithConfig(ctx, args[0], turnkey.Dir(root), cfg)
			if err != nil {
				return err
			}

			w := out(cmd)
			fmt.Fprintf(w, "platform: %s\n", res.Platform)
			fmt.Fprintf(w, "prefix: %s\n", res.Prefix.Path())
			fmt.Fprintf(w, "staged in %s:\n", res.Dir)
			for _, path := range res.Staged {
				fmt.Fprintf(w, "  %s\n", path)
			}
			fmt.Fprintln(w, "loaded:")
			for _, path := range res.Loaded {
				fmt.Fprintf(w, "  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", ".", "resource root directory")
	cmd.Flags().String(keyLoader, "native", "loader backend: native or wasm")
	cmd.Flags().String(keyTempDir, "", "parent directory for staged files (default: system temp dir)")
	return cmd
}
