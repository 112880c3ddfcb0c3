package emaildomain

import (
	"github.com/klothoplatform/sesdomain/pkg/config"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// ResourceName is the logical name of the component in the programs below.
const ResourceName = "email-domain"

func ArgsFromConfig(cfg config.Config) *Args {
	return &Args{
		Description: cfg.Description,
		Tags:        cfg.Tags,
		Region:      cfg.Region,
		BaseDomain:  cfg.BaseDomain,
		Environment: cfg.Environment,
		ZoneId:      pulumi.String(cfg.ZoneId),
		AdminEmail:  cfg.AdminEmail,
	}
}

// Deploy declares the email domain for cfg and exports its outputs from the stack.
func Deploy(ctx *pulumi.Context, cfg config.Config) (*EmailDomain, error) {
	d, err := NewEmailDomain(ctx, ResourceName, ArgsFromConfig(cfg))
	if err != nil {
		return nil, err
	}
	ctx.Export(OutputSmtpPassword, d.EmailUserSmtpPassword)
	ctx.Export(OutputUserId, d.EmailUserId)
	ctx.Export(OutputSendDomain, d.SendDomain)
	ctx.Export(OutputMailFromDomain, d.MailFromDomain)
	ctx.Export(OutputVerificationToken, d.VerificationToken)
	ctx.Export(OutputDkimTokens, d.DkimTokens)
	return d, nil
}

// Program is the inline program used by the automation driver.
func Program(cfg config.Config) pulumi.RunFunc {
	return func(ctx *pulumi.Context) error {
		_, err := Deploy(ctx, cfg)
		return err
	}
}

// StackProgram reads its config from the stack configuration; it is the entry point of the
// standalone program run by the pulumi CLI.
func StackProgram(ctx *pulumi.Context) error {
	cfg, err := config.FromPulumi(ctx)
	if err != nil {
		return err
	}
	_, err = Deploy(ctx, cfg)
	return err
}
