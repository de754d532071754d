package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/turnkey/metadata"
)

func newWriteCommand(a *app) *cobra.Command {
	var (
		bundled  []string
		system   []string
		commands []string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write a metadata file",
		Long: `Write a metadata file for one platform bundle. Repeat a flag to add
more names; load commands keep their order.

Examples:
  turnkey write --bundled liba.so --bundled libb.so --system libm.so.6 \
    --load libb.so --load liba.so -o linux/amd64/turnkey.xml
  turnkey write --bundled a.dll --load a.dll --format properties`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meta := metadata.New(bundled, system, commands)
			for _, issue := range meta.Check() {
				a.log.Warn("metadata issue", zap.Stringer("issue", issue))
			}

			f, err := formatFor(output, a.cfg.Format)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return meta.EncodeFormat(out(cmd), f)
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := meta.EncodeFormat(file, f); err != nil {
				file.Close()
				return err
			}
			return file.Close()
		},
	}

	cmd.Flags().StringArrayVar(&bundled, "bundled", nil, "bundled library file name")
	cmd.Flags().StringArrayVar(&system, "system", nil, "system library name")
	cmd.Flags().StringArrayVar(&commands, "load", nil, "load command, in load order")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().String(keyFormat, "", "metadata format: xml or properties (default: by file extension)")
	return cmd
}
