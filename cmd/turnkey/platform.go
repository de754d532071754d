package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/turnkey"
	"github.com/wippyai/turnkey/platform"
)

func newPlatformCommand(a *app) *cobra.Command {
	var (
		namespace string
		osReport  string
		cpuReport string
	)

	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Show the identified platform and resource prefix",
		Long: `Show the platform turnkey identifies for this process and, with
--namespace, where the bundle metadata is looked up.

--os and --cpu classify a report string instead of the running host, for
example "Windows 10" or "x86_64".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := resolvePlatform(osReport, cpuReport)
			if err != nil {
				return err
			}

			w := out(cmd)
			fmt.Fprintf(w, "platform: %s (%s, %s)\n", p, p.OS, p.CPU)
			fmt.Fprintf(w, "os token: %s\n", p.OS.Token())
			fmt.Fprintf(w, "cpu token: %s\n", p.CPU.Token())

			if namespace == "" {
				return nil
			}
			prefix, err := platform.NewPrefix(namespace, p)
			if err != nil {
				return err
			}
			meta, err := prefix.Resolve(turnkey.MetadataFileName)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "prefix: %s\n", prefix.Path())
			fmt.Fprintf(w, "metadata: %s\n", meta)
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "library namespace to resolve")
	cmd.Flags().StringVar(&osReport, "os", "", "operating system report to classify instead of the host")
	cmd.Flags().StringVar(&cpuReport, "cpu", "", "CPU architecture report to classify instead of the host")
	return cmd
}

// resolvePlatform classifies the given reports, falling back to the host for
// empty ones.
func resolvePlatform(osReport, cpuReport string) (platform.Platform, error) {
	var (
		p   platform.Platform
		err error
	)
	if osReport != "" {
		p.OS, err = platform.ParseOS(osReport)
	} else {
		p.OS, err = platform.IdentifyOS()
	}
	if err != nil {
		return platform.Platform{}, err
	}

	if cpuReport != "" {
		p.CPU, err = platform.ParseCPU(cpuReport)
	} else {
		p.CPU, err = platform.IdentifyCPU()
	}
	if err != nil {
		return platform.Platform{}, err
	}
	return p, nil
}
