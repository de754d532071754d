package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/turnkey/errors"
	"github.com/wippyai/turnkey/metadata"
)

func newInspectCommand(a *app) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Decode a metadata file and report its contents and issues",
		Long: `Decode a turnkey.xml (or .properties) metadata file, print the bundled
libraries, system libraries and load commands, and list consistency issues
such as load commands naming files that are not bundled.

With -i, browse the file in an interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := readMetadataFile(args[0], a.cfg.Format)
			if err != nil {
				return err
			}

			if interactive {
				if !term.IsTerminal(int(os.Stdout.Fd())) {
					return fmt.Errorf("interactive mode requires a terminal")
				}
				return runInspector(args[0], meta)
			}

			printMetadata(out(cmd), meta)
			return nil
		},
	}

	cmd.Flags().String(keyFormat, "", "metadata format: xml or properties (default: by file extension)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse in an interactive view")
	return cmd
}

// formatFor returns the configured format, or the one implied by name.
func formatFor(name, configured string) (metadata.Format, error) {
	if configured == "" {
		return metadata.FormatForName(name), nil
	}
	return metadata.ParseFormat(configured)
}

func readMetadataFile(name, format string) (*metadata.Metadata, error) {
	f, err := formatFor(name, format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(name)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			e := errors.NotFound(errors.PhaseMetadata, "metadata file", name)
			e.Cause = err
			return nil, e
		}
		return nil, errors.LoadFailure(errors.PhaseMetadata, name, err)
	}
	defer file.Close()

	return metadata.DecodeFormat(file, f)
}

func printMetadata(w io.Writer, meta *metadata.Metadata) {
	printGroup(w, "bundled libraries", meta.BundledLibraries())
	printGroup(w, "system libraries", meta.SystemLibraries())
	printGroup(w, "load commands", meta.LoadCommands())

	issues := meta.Check()
	if len(issues) == 0 {
		fmt.Fprintln(w, "issues: none")
	} else {
		fmt.Fprintf(w, "issues (%d):\n", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(w, "  %s\n", issue)
		}
	}
	fmt.Fprintf(w, "hash: %016x\n", meta.Hash())
}

func printGroup(w io.Writer, title string, values []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(values))
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
}
