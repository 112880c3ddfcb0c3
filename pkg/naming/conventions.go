package naming

import (
	"fmt"
	"strings"
)

// Conventions holds every hardcoded naming and value format used by the email domain records.
// Values are copied on every call to [Default] so callers cannot mutate shared state.
type Conventions struct {
	// ProductionEnvironment is the environment name whose send domain is the bare base domain.
	ProductionEnvironment string
	PrincipalPath         string
	PrincipalSuffix       string
	SendActions           []string
	// FromAddressConditionKey is matched with StringLike against the allowed-sender pattern.
	FromAddressConditionKey string

	RecordTTL int

	VerificationRecordLabel string

	MailFromLabel        string
	MailFromMXPriority   int
	FeedbackEndpointHost string
	MailEndpointSuffix   string

	SenderPolicy string

	SigningRecordLabel string
	SigningSuffix      string
	SigningTokenCount  int

	ReportingRecordLabel string
	ReportingPolicy      string
	FailureOptions       string
}

func Default() Conventions {
	return Conventions{
		ProductionEnvironment:   "production",
		PrincipalPath:           "/system/",
		PrincipalSuffix:         "email-user",
		SendActions:             []string{"ses:SendEmail", "ses:SendRawEmail"},
		FromAddressConditionKey: "ses:FromAddress",

		RecordTTL: 600,

		VerificationRecordLabel: "_amazonses",

		MailFromLabel:        "bounce",
		MailFromMXPriority:   10,
		FeedbackEndpointHost: "feedback-smtp",
		MailEndpointSuffix:   "amazonses.com",

		SenderPolicy: "v=spf1 include:amazonses.com mail -all",

		SigningRecordLabel: "_domainkey",
		SigningSuffix:      "dkim.amazonses.com",
		SigningTokenCount:  3,

		ReportingRecordLabel: "_dmarc",
		ReportingPolicy:      "none",
		FailureOptions:       "1",
	}
}

func (c Conventions) IsProduction(environment string) bool {
	return environment == c.ProductionEnvironment
}

func (c Conventions) PrincipalName(prefix string) string {
	return prefix + "-" + c.PrincipalSuffix
}

// VerificationRecordName is relative to the hosted zone; the provider appends the zone apex.
func (c Conventions) VerificationRecordName(environment string) string {
	return c.VerificationRecordLabel + "." + environment
}

// MailFromDomain is the bounce (return-path) domain. It only receives bounce notifications
// from the provider and is never used to send or receive ordinary mail.
func (c Conventions) MailFromDomain(sendDomain string) string {
	return c.MailFromLabel + "." + sendDomain
}

func (c Conventions) MailFromMX(region string) string {
	return fmt.Sprintf("%d %s.%s.%s", c.MailFromMXPriority, c.FeedbackEndpointHost, region, c.MailEndpointSuffix)
}

func (c Conventions) SigningRecordName(token, environment, baseDomain string) string {
	return strings.Join([]string{token, c.SigningRecordLabel, environment, baseDomain}, ".")
}

func (c Conventions) SigningRecordValue(token string) string {
	return token + "." + c.SigningSuffix
}

func (c Conventions) ReportingRecordName(sendDomain string) string {
	return c.ReportingRecordLabel + "." + sendDomain
}

func (c Conventions) ReportingRecordValue(adminEmail string) string {
	return fmt.Sprintf("v=DMARC1; p=%s; rua=mailto:%s; fo=%s", c.ReportingPolicy, adminEmail, c.FailureOptions)
}
