package emaildomain

import (
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/route53"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ses"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// newRecord declares a DNS record in the caller's zone. Name and values may be outputs of other
// resources, in which case the record waits for them.
func (d *declaration) newRecord(key string, typ records.Type, name pulumi.StringInput, values pulumi.StringArrayInput) (*route53.Record, error) {
	return route53.NewRecord(d.ctx, d.resourceName(key), &route53.RecordArgs{
		ZoneId:  d.zoneId,
		Name:    name,
		Type:    pulumi.String(string(typ)),
		Ttl:     pulumi.Int(d.conv.RecordTTL),
		Records: values,
	}, d.opts...)
}

func (d *declaration) domainVerification() (*ses.DomainIdentity, error) {
	identity, err := ses.NewDomainIdentity(d.ctx, d.resourceName(IdentitySuffix), &ses.DomainIdentityArgs{
		Domain: pulumi.String(d.names.SendDomain),
	}, d.opts...)
	if err != nil {
		return nil, err
	}

	rec := records.Verification(d.conv, d.names, "")
	_, err = d.newRecord(rec.Key, rec.Type, pulumi.String(rec.Name), pulumi.StringArray{identity.VerificationToken})
	return identity, err
}
