package emaildomain

import (
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/pkg/errors"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ses"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// signing declares the DKIM configuration and one CNAME per token. The number of records is fixed
// by the conventions, not by the length of the token list.
func (d *declaration) signing(identity *ses.DomainIdentity) (*ses.DomainDkim, error) {
	dkim, err := ses.NewDomainDkim(d.ctx, d.resourceName(DkimSuffix), &ses.DomainDkimArgs{
		Domain: identity.Domain,
	}, d.opts...)
	if err != nil {
		return nil, err
	}

	for i := 0; i < d.conv.SigningTokenCount; i++ {
		token := signingToken(dkim.DkimTokens, i, d.conv.SigningTokenCount)
		name := token.ApplyT(func(token string) string {
			return records.Signing(d.conv, d.names, i, token).Name
		}).(pulumi.StringOutput)
		values := token.ApplyT(func(token string) []string {
			return records.Signing(d.conv, d.names, i, token).Values
		}).(pulumi.StringArrayOutput)

		if _, err := d.newRecord(records.SigningKey(i), records.CNAME, name, values); err != nil {
			return nil, err
		}
	}
	return dkim, nil
}

// signingToken selects token i, failing the output if the provider returned a list of the wrong
// length.
func signingToken(tokens pulumi.StringArrayOutput, i, count int) pulumi.StringOutput {
	return tokens.ApplyT(func(ts []string) (string, error) {
		if len(ts) != count {
			return "", errors.Wrapf(ErrSigningTokenCount, "got %d, want %d", len(ts), count)
		}
		return ts[i], nil
	}).(pulumi.StringOutput)
}
