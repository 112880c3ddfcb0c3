package clicommon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/klothoplatform/sesdomain/pkg/closenicely"
	"github.com/klothoplatform/sesdomain/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type CommonConfig struct {
	verbose   Verbosity
	jsonLog   bool
	color     string
	profileTo string
}

func setupProfiling(commonCfg *CommonConfig) func() {
	if commonCfg.profileTo != "" {
		err := os.MkdirAll(filepath.Dir(commonCfg.profileTo), 0755)
		if err != nil {
			panic(fmt.Errorf("failed to create profile directory: %w", err))
		}
		profileF, err := os.OpenFile(commonCfg.profileTo, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			panic(fmt.Errorf("failed to open profile file: %w", err))
		}
		err = pprof.StartCPUProfile(profileF)
		if err != nil {
			panic(fmt.Errorf("failed to start profile: %w", err))
		}
		return func() {
			pprof.StopCPUProfile()
			closenicely.OrDebug(profileF)
		}
	}
	return func() {}
}

func (c *CommonConfig) LogOpts() logging.LogOpts {
	opts := logging.LogOpts{
		Verbose:       c.verbose.Debug(),
		Color:         c.color,
		DefaultLevels: c.verbose.Levels(),
	}
	if c.jsonLog {
		opts.Encoding = "json"
	}
	return opts
}

func SetupRoot(root *cobra.Command, commonCfg *CommonConfig) {
	flags := root.PersistentFlags()
	flags.VarP(&commonCfg.verbose, "verbose", "v", "Enable verbose logging (repeat to include engine output)")
	flags.Lookup("verbose").NoOptDefVal = "true"
	flags.BoolVar(&commonCfg.jsonLog, "json-log", false, "Enable JSON logging")
	flags.StringVar(&commonCfg.color, "color", "auto", "Colorize output: auto, always or never")
	flags.StringVar(&commonCfg.profileTo, "profiling", "", "Profile to file")

	profileClose := func() {}

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		switch commonCfg.color {
		case "always", "on":
			color.NoColor = false
		case "never", "off":
			color.NoColor = true
		}
		logger := commonCfg.LogOpts().NewLogger()
		zap.ReplaceGlobals(logger)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logging.WithLogger(ctx, logger))

		profileClose = setupProfiling(commonCfg)
	}

	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closenicely.FuncOrDebug(zap.L().Sync)

		profileClose()
	}
}
