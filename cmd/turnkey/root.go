package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/turnkey"
	"github.com/wippyai/turnkey/native"
	"github.com/wippyai/turnkey/wasm"
)

// app is the state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *cliConfig
	log     *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: newViper(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "turnkey",
		Short: "Inspect, write and test-load per-platform native library bundles",
		Long: `turnkey works with native library bundles laid out as

  <namespace>/<os>/<cpu>/turnkey.xml
  <namespace>/<os>/<cpu>/<bundled files>

where os is osx, linux or windows and cpu is x86, amd64 or aarch64.

Examples:
  turnkey platform --namespace com/example/lib
  turnkey inspect turnkey.xml
  turnkey write --bundled liba.so --load liba.so -o turnkey.xml
  turnkey load com/example/lib --root ./resources`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String(keyLogLevel, "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newPlatformCommand(a))
	root.AddCommand(newInspectCommand(a))
	root.AddCommand(newWriteCommand(a))
	root.AddCommand(newLoadCommand(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = log

	turnkey.SetLogger(log.Named("turnkey"))
	native.SetLogger(log.Named("native"))
	wasm.SetLogger(log.Named("wasm"))
	return nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
