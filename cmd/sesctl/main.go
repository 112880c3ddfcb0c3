package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	clicommon "github.com/klothoplatform/sesdomain/pkg/cli_common"
	"github.com/klothoplatform/sesdomain/pkg/config"
	"github.com/spf13/cobra"
)

var commonCfg struct {
	clicommon.CommonConfig
	configPath string
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sesctl",
		Short:         "Plan, deploy and verify an outbound email sending domain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	clicommon.SetupRoot(rootCmd, &commonCfg.CommonConfig)
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&commonCfg.configPath, "config", "c", "sesdomain.yaml", "Deployment config file (yaml, json or toml)")

	rootCmd.AddCommand(
		newPlanCmd(),
		newPreviewCmd(),
		newUpCmd(),
		newDownCmd(),
		newOutputsCmd(),
		newCheckCmd(),
	)
	return rootCmd
}

func loadConfig() (config.Config, error) {
	return config.Load(commonCfg.configPath)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
