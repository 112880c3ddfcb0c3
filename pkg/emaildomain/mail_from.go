package emaildomain

import (
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ses"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// mailFrom binds the bounce domain to the identity and routes it to the provider's feedback
// endpoint. The bounce domain is not the send domain and never handles ordinary mail.
func (d *declaration) mailFrom(identity *ses.DomainIdentity) (*ses.MailFrom, error) {
	mailFrom, err := ses.NewMailFrom(d.ctx, d.resourceName(MailFromSuffix), &ses.MailFromArgs{
		Domain: identity.Domain,
		MailFromDomain: identity.Domain.ApplyT(func(domain string) string {
			return d.conv.MailFromDomain(domain)
		}).(pulumi.StringOutput),
	}, d.opts...)
	if err != nil {
		return nil, err
	}

	rec := records.MailFromMX(d.conv, "", d.region)
	_, err = d.newRecord(rec.Key, rec.Type, mailFrom.MailFromDomain, pulumi.ToStringArray(rec.Values))
	return mailFrom, err
}

// senderPolicy authorizes the provider to send for the bounce domain.
func (d *declaration) senderPolicy(mailFrom *ses.MailFrom) error {
	rec := records.SenderPolicy(d.conv, "")
	_, err := d.newRecord(rec.Key, rec.Type, mailFrom.MailFromDomain, pulumi.ToStringArray(rec.Values))
	return err
}
