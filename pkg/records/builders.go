package records

import (
	"fmt"

	"github.com/klothoplatform/sesdomain/pkg/naming"
	"github.com/pkg/errors"
)

const (
	KeyVerification = "verification"
	KeyMailFromMX   = "mail-from-mx"
	KeySenderPolicy = "sender-policy"
	KeyReporting    = "reporting-policy"
)

var ErrSigningTokenCount = errors.New("unexpected number of signing tokens")

// Tokens are the provider-issued values the record set depends on.
type Tokens struct {
	Verification string
	Signing      []string
}

// Inputs are the resolved, non-token values the record set depends on.
type Inputs struct {
	Names      naming.Names
	Region     string
	AdminEmail string
}

func SigningKey(i int) string {
	return fmt.Sprintf("dkim-%d", i+1)
}

func Verification(c naming.Conventions, n naming.Names, token string) Record {
	return Record{
		Key:    KeyVerification,
		Name:   c.VerificationRecordName(n.Environment),
		Type:   TXT,
		TTL:    c.RecordTTL,
		Values: []string{token},
	}
}

func MailFromMX(c naming.Conventions, mailFromDomain, region string) Record {
	return Record{
		Key:    KeyMailFromMX,
		Name:   mailFromDomain,
		Type:   MX,
		TTL:    c.RecordTTL,
		Values: []string{c.MailFromMX(region)},
	}
}

// SenderPolicy is attached to the MAIL FROM domain, not the send domain.
func SenderPolicy(c naming.Conventions, mailFromDomain string) Record {
	return Record{
		Key:    KeySenderPolicy,
		Name:   mailFromDomain,
		Type:   TXT,
		TTL:    c.RecordTTL,
		Values: []string{c.SenderPolicy},
	}
}

func Signing(c naming.Conventions, n naming.Names, i int, token string) Record {
	return Record{
		Key:    SigningKey(i),
		Name:   c.SigningRecordName(token, n.Environment, n.BaseDomain),
		Type:   CNAME,
		TTL:    c.RecordTTL,
		Values: []string{c.SigningRecordValue(token)},
	}
}

func Reporting(c naming.Conventions, sendDomain, adminEmail string) Record {
	return Record{
		Key:    KeyReporting,
		Name:   c.ReportingRecordName(sendDomain),
		Type:   TXT,
		TTL:    c.RecordTTL,
		Values: []string{c.ReportingRecordValue(adminEmail)},
	}
}

// All returns every record an email domain declares, in declaration order.
func All(c naming.Conventions, in Inputs, tokens Tokens) ([]Record, error) {
	if len(tokens.Signing) != c.SigningTokenCount {
		return nil, errors.Wrapf(ErrSigningTokenCount, "got %d, want %d", len(tokens.Signing), c.SigningTokenCount)
	}
	mailFrom := c.MailFromDomain(in.Names.SendDomain)
	recs := []Record{
		Verification(c, in.Names, tokens.Verification),
		MailFromMX(c, mailFrom, in.Region),
		SenderPolicy(c, mailFrom),
	}
	for i := 0; i < c.SigningTokenCount; i++ {
		recs = append(recs, Signing(c, in.Names, i, tokens.Signing[i]))
	}
	return append(recs, Reporting(c, in.Names.SendDomain, in.AdminEmail)), nil
}
