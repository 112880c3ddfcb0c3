package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/klothoplatform/sesdomain/pkg/dnscheck"
	"github.com/klothoplatform/sesdomain/pkg/plan"
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/klothoplatform/sesdomain/pkg/stack"
	"github.com/spf13/cobra"
)

var checkConfig struct {
	servers           []string
	timeout           time.Duration
	retries           int
	verificationToken string
	dkimTokens        []string
}

func newCheckCmd() *cobra.Command {
	checkCommand := &cobra.Command{
		Use:   "check",
		Short: "Verify the deployed DNS records are published with the expected values",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	flags := checkCommand.Flags()
	flags.StringSliceVar(&checkConfig.servers, "server", nil, "DNS server to query, host[:port] (default: nameservers in /etc/resolv.conf)")
	flags.DurationVar(&checkConfig.timeout, "timeout", dnscheck.DefaultTimeout, "Timeout per DNS query")
	flags.IntVar(&checkConfig.retries, "retries", 1, "Retries per record when a server fails")
	flags.StringVar(&checkConfig.verificationToken, "verification-token", "", "Domain verification token (default: read from the stack outputs)")
	flags.StringArrayVar(&checkConfig.dkimTokens, "dkim-token", nil, "DKIM token, repeat once per token (default: read from the stack outputs)")
	return checkCommand
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tokens := records.Tokens{Verification: checkConfig.verificationToken, Signing: checkConfig.dkimTokens}
	if tokens.Verification == "" || len(tokens.Signing) == 0 {
		d, err := stack.Open(ctx, cfg)
		if err != nil {
			return err
		}
		out, err := d.Outputs(ctx)
		if err != nil {
			return err
		}
		if tokens.Verification == "" {
			tokens.Verification = out.VerificationToken
		}
		if len(tokens.Signing) == 0 {
			tokens.Signing = out.DkimTokens
		}
	}

	p, err := plan.New(cfg, tokens)
	if err != nil {
		return err
	}
	resolver := dnscheck.NewResolver(dnscheck.ResolverConfig{
		Nameservers: checkConfig.servers,
		Timeout:     checkConfig.timeout,
		Retries:     checkConfig.retries,
	})
	results, checkErr := dnscheck.Check(ctx, resolver, p.Zone, p.Records)
	if err := writeResults(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	return checkErr
}

func statusString(s dnscheck.Status) string {
	switch s {
	case dnscheck.StatusOK:
		return color.GreenString(string(s))
	case dnscheck.StatusMissing, dnscheck.StatusError:
		return color.RedString(string(s))
	default:
		return color.YellowString(string(s))
	}
}

func writeResults(w io.Writer, results []dnscheck.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tRECORD\tNAME\tTYPE\tDETAIL")
	for _, r := range results {
		detail := ""
		switch r.Status {
		case dnscheck.StatusMismatch:
			detail = fmt.Sprintf("expected %s, found %s", strings.Join(r.Expected, " | "), strings.Join(r.Found, " | "))
		case dnscheck.StatusMissing:
			detail = "expected " + strings.Join(r.Expected, " | ")
		case dnscheck.StatusError:
			detail = r.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", statusString(r.Status), r.Record.Key, r.Name, r.Record.Type, detail)
	}
	return tw.Flush()
}
