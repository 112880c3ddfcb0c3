package emaildomain

import (
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ses"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// reportingPolicy publishes the DMARC policy for the identity's domain.
func (d *declaration) reportingPolicy(identity *ses.DomainIdentity) error {
	name := identity.Domain.ApplyT(func(domain string) string {
		return records.Reporting(d.conv, domain, d.adminEmail).Name
	}).(pulumi.StringOutput)
	rec := records.Reporting(d.conv, "", d.adminEmail)
	_, err := d.newRecord(rec.Key, rec.Type, name, pulumi.ToStringArray(rec.Values))
	return err
}
