package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setting keys. The environment variable is TURNKEY_ plus the key in upper
// case with dashes replaced by underscores.
const (
	keyLogLevel = "log-level"
	keyTempDir  = "temp-dir"
	keyLoader   = "loader"
	keyFormat   = "format"
)

const envPrefix = "TURNKEY"

type cliConfig struct {
	LogLevel string
	TempDir  string
	Loader   string
	Format   string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyTempDir, "")
	v.SetDefault(keyLoader, "native")
	v.SetDefault(keyFormat, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads cfgFile (if any) into v and binds the given flags over it.
// Flags that are not defined on the running command are skipped.
func loadConfig(v *viper.Viper, cfgFile string, flags *pflag.FlagSet) (*cliConfig, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	for _, key := range []string{keyLogLevel, keyTempDir, keyLoader, keyFormat} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg := &cliConfig{
		LogLevel: v.GetString(keyLogLevel),
		TempDir:  v.GetString(keyTempDir),
		Loader:   v.GetString(keyLoader),
		Format:   v.GetString(keyFormat),
	}
	switch cfg.Loader {
	case "native", "wasm":
	default:
		return nil, fmt.Errorf("unknown loader %q (want native or wasm)", cfg.Loader)
	}
	return cfg, nil
}

// newLogger builds the console logger used by the CLI.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zcfg.DisableStacktrace = true
	zcfg.Sampling = nil
	return zcfg.Build()
}
