package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/klothoplatform/sesdomain/pkg/stack"
	"github.com/spf13/cobra"
)

var stackConfig struct {
	quiet       bool
	showSecrets bool
	yes         bool
}

func addQuietFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&stackConfig.quiet, "quiet", "q", false, "Log engine progress at debug instead of printing it")
}

func addShowSecretsFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&stackConfig.showSecrets, "show-secrets", false, "Print secret outputs in plain text")
}

func openStack(ctx context.Context, cmd *cobra.Command) (*stack.Driver, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	d, err := stack.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if !stackConfig.quiet {
		d.Progress = cmd.OutOrStdout()
	}
	return d, nil
}

func newPreviewCmd() *cobra.Command {
	previewCommand := &cobra.Command{
		Use:   "preview",
		Short: "Preview the changes an update would make",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openStack(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			_, err = d.Preview(cmd.Context())
			return err
		},
	}
	addQuietFlag(previewCommand)
	return previewCommand
}

func newUpCmd() *cobra.Command {
	upCommand := &cobra.Command{
		Use:   "up",
		Short: "Refresh and deploy the email domain, then print the stack outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openStack(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			out, err := d.Up(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Deployed %s", d.Ref.Name))
			return out.Write(cmd.OutOrStdout(), stackConfig.showSecrets)
		},
	}
	addQuietFlag(upCommand)
	addShowSecretsFlag(upCommand)
	return upCommand
}

func newDownCmd() *cobra.Command {
	downCommand := &cobra.Command{
		Use:   "down",
		Short: "Destroy every resource of the email domain and remove the stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stackConfig.yes {
				return fmt.Errorf("refusing to destroy without --yes")
			}
			d, err := openStack(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			if err := d.Down(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Destroyed %s", d.Ref.Name))
			return nil
		},
	}
	addQuietFlag(downCommand)
	downCommand.Flags().BoolVarP(&stackConfig.yes, "yes", "y", false, "Confirm the destroy")
	return downCommand
}

func newOutputsCmd() *cobra.Command {
	outputsCommand := &cobra.Command{
		Use:   "outputs",
		Short: "Print the stack outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openStack(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			out, err := d.Outputs(cmd.Context())
			if err != nil {
				return err
			}
			return out.Write(cmd.OutOrStdout(), stackConfig.showSecrets)
		},
	}
	addShowSecretsFlag(outputsCommand)
	return outputsCommand
}
