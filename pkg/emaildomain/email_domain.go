package emaildomain

import (
	"fmt"

	"github.com/klothoplatform/sesdomain/pkg/config"
	"github.com/klothoplatform/sesdomain/pkg/logging"
	"github.com/klothoplatform/sesdomain/pkg/naming"
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/pkg/errors"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	pulumiconfig "github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const ComponentType = "klotho:email:EmailDomain"

// Registered component outputs, also used as stack export names.
const (
	OutputSmtpPassword      = "emailUserSmtpPassword"
	OutputUserId            = "emailUserId"
	OutputSendDomain        = "sendDomain"
	OutputMailFromDomain    = "mailFromDomain"
	OutputVerificationToken = "verificationToken"
	OutputDkimTokens        = "dkimTokens"
)

// Logical name suffixes of the child resources; DNS records use their record key.
const (
	UserSuffix       = "email-user"
	UserPolicySuffix = "email-user-policy"
	AccessKeySuffix  = "email-user-key"
	IdentitySuffix   = "domain-identity"
	MailFromSuffix   = "mail-from"
	DkimSuffix       = "domain-dkim"
)

var (
	ErrInvalidArgs       = errors.New("invalid email domain arguments")
	ErrSigningTokenCount = records.ErrSigningTokenCount
)

type (
	Args struct {
		Description string
		Tags        map[string]string
		// Region defaults to the aws:region provider configuration.
		Region     string `validate:"required"`
		BaseDomain string
		// Environment defaults to the stack name.
		Environment string
		// ZoneId is the hosted zone every record is created in.
		ZoneId     pulumi.StringInput `validate:"-"`
		AdminEmail string             `validate:"required,email"`
		// Conventions overrides [naming.Default] when non-nil.
		Conventions *naming.Conventions `validate:"-"`
	}

	// EmailDomain is a verified SES sending domain for one environment together with the IAM
	// credentials allowed to send from it.
	EmailDomain struct {
		pulumi.ResourceState

		// EmailUserSmtpPassword is the SMTP password derived from the access key. Secret.
		EmailUserSmtpPassword pulumi.StringOutput      `pulumi:"emailUserSmtpPassword"`
		EmailUserId           pulumi.StringOutput      `pulumi:"emailUserId"`
		SendDomain            pulumi.StringOutput      `pulumi:"sendDomain"`
		MailFromDomain        pulumi.StringOutput      `pulumi:"mailFromDomain"`
		VerificationToken     pulumi.StringOutput      `pulumi:"verificationToken"`
		DkimTokens            pulumi.StringArrayOutput `pulumi:"dkimTokens"`

		Names naming.Names
	}

	declaration struct {
		ctx        *pulumi.Context
		conv       naming.Conventions
		names      naming.Names
		region     string
		adminEmail string
		zoneId     pulumi.StringInput
		tags       map[string]string
		opts       []pulumi.ResourceOption
		log        *zap.Logger
	}
)

// NewEmailDomain validates args, then declares every resource of the email domain as a child of
// the component. Invalid arguments are rejected before anything is registered.
func NewEmailDomain(ctx *pulumi.Context, name string, args *Args, opts ...pulumi.ResourceOption) (*EmailDomain, error) {
	d, err := newDeclaration(ctx, args)
	if err != nil {
		return nil, err
	}

	comp := &EmailDomain{Names: d.names}
	err = ctx.RegisterComponentResource(ComponentType, name, comp, opts...)
	if err != nil {
		return nil, err
	}
	d.opts = []pulumi.ResourceOption{pulumi.Parent(comp)}
	d.log.Debug("declaring email domain", zap.String("send_domain", d.names.SendDomain))

	key, err := d.credentials()
	if err != nil {
		return nil, err
	}
	identity, err := d.domainVerification()
	if err != nil {
		return nil, err
	}
	mailFrom, err := d.mailFrom(identity)
	if err != nil {
		return nil, err
	}
	if err := d.senderPolicy(mailFrom); err != nil {
		return nil, err
	}
	dkim, err := d.signing(identity)
	if err != nil {
		return nil, err
	}
	if err := d.reportingPolicy(identity); err != nil {
		return nil, err
	}

	comp.EmailUserSmtpPassword = pulumi.ToSecret(key.SesSmtpPasswordV4).(pulumi.StringOutput)
	comp.EmailUserId = key.ID().ToStringOutput()
	comp.SendDomain = identity.Domain
	comp.MailFromDomain = mailFrom.MailFromDomain
	comp.VerificationToken = identity.VerificationToken
	comp.DkimTokens = dkim.DkimTokens

	return comp, ctx.RegisterResourceOutputs(comp, pulumi.Map{
		OutputSmtpPassword:      comp.EmailUserSmtpPassword,
		OutputUserId:            comp.EmailUserId,
		OutputSendDomain:        comp.SendDomain,
		OutputMailFromDomain:    comp.MailFromDomain,
		OutputVerificationToken: comp.VerificationToken,
		OutputDkimTokens:        comp.DkimTokens,
	})
}

func newDeclaration(ctx *pulumi.Context, args *Args) (*declaration, error) {
	if args == nil {
		return nil, errors.Wrap(ErrInvalidArgs, "args must not be nil")
	}
	a := *args
	if a.Environment == "" {
		a.Environment = ctx.Stack()
	}
	if a.Region == "" {
		a.Region = pulumiconfig.Get(ctx, "aws:region")
	}
	conv := naming.Default()
	if a.Conventions != nil {
		conv = *a.Conventions
	}

	errs := config.ValidateStruct(a)
	if isEmptyZone(a.ZoneId) {
		errs = multierr.Append(errs, errors.New("ZoneId is required"))
	}
	if a.BaseDomain != "" {
		errs = multierr.Append(errs, naming.ValidateDomain(a.BaseDomain))
	}
	if a.Environment != "" {
		errs = multierr.Append(errs, naming.ValidateEnvironment(a.Environment))
	}
	names, err := conv.Resolve(a.BaseDomain, a.Environment)
	errs = multierr.Append(errs, err)
	if errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, errs)
	}

	tags := make(map[string]string, len(a.Tags)+2)
	for k, v := range a.Tags {
		tags[k] = v
	}
	tags["Environment"] = names.Environment
	if _, ok := tags["Description"]; !ok && a.Description != "" {
		tags["Description"] = a.Description
	}

	return &declaration{
		ctx:        ctx,
		conv:       conv,
		names:      names,
		region:     a.Region,
		adminEmail: a.AdminEmail,
		zoneId:     a.ZoneId,
		tags:       tags,
		log:        logging.GetLogger(ctx.Context()).Named("emaildomain").With(zap.String("prefix", names.ResourcePrefix)),
	}, nil
}

// isEmptyZone reports a missing zone reference. Only literal values can be checked here; an output
// resolves after declaration.
func isEmptyZone(zone pulumi.StringInput) bool {
	switch z := zone.(type) {
	case nil:
		return true
	case pulumi.String:
		return z == ""
	}
	return false
}

// LogicalName is the Pulumi logical name of a child resource.
func LogicalName(prefix, suffix string) string {
	return prefix + "-" + suffix
}

func (d *declaration) resourceName(suffix string) string {
	return LogicalName(d.names.ResourcePrefix, suffix)
}
