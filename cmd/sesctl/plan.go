package main

import (
	"github.com/klothoplatform/sesdomain/pkg/naming"
	"github.com/klothoplatform/sesdomain/pkg/plan"
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/spf13/cobra"
)

var planConfig struct {
	format            string
	verificationToken string
	dkimTokens        []string
}

func newPlanCmd() *cobra.Command {
	planCommand := &cobra.Command{
		Use:   "plan",
		Short: "Show the resources and DNS records the config declares, without deploying",
		Args:  cobra.NoArgs,
		RunE:  runPlan,
	}
	flags := planCommand.Flags()
	flags.StringVarP(&planConfig.format, "format", "f", string(plan.FormatText), "Output format: text, dot, zone or svg")
	flags.StringVar(&planConfig.verificationToken, "verification-token", "", "Known domain verification token")
	flags.StringArrayVar(&planConfig.dkimTokens, "dkim-token", nil, "Known DKIM token (repeat once per token)")
	return planCommand
}

// knownTokens overlays the tokens given on the command line on placeholders.
func knownTokens(verification string, dkim []string) records.Tokens {
	tokens := plan.PlaceholderTokens(naming.Default())
	if verification != "" {
		tokens.Verification = verification
	}
	if len(dkim) > 0 {
		tokens.Signing = dkim
	}
	return tokens
}

func runPlan(cmd *cobra.Command, args []string) error {
	format, err := plan.ParseFormat(planConfig.format)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := plan.New(cfg, knownTokens(planConfig.verificationToken, planConfig.dkimTokens))
	if err != nil {
		return err
	}
	if err := records.Lint(p.Zone, p.Records); err != nil {
		return err
	}
	return p.Write(cmd.Context(), cmd.OutOrStdout(), format)
}
