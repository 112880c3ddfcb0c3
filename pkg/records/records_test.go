package records

import (
	"strings"
	"testing"

	"github.com/klothoplatform/sesdomain/pkg/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokens = Tokens{
	Verification: "verify-token",
	Signing:      []string{"tok1", "tok2", "tok3"},
}

func inputsFor(t *testing.T, env string) Inputs {
	names, err := naming.Resolve("example.com", env)
	require.NoError(t, err)
	return Inputs{Names: names, Region: "us-east-1", AdminEmail: "admin@example.com"}
}

func byKey(recs []Record) map[string]Record {
	m := make(map[string]Record, len(recs))
	for _, r := range recs {
		m[r.Key] = r
	}
	return m
}

func TestAll_production(t *testing.T) {
	assert := assert.New(t)
	recs, err := All(naming.Default(), inputsFor(t, "production"), testTokens)
	require.NoError(t, err)
	require.Len(t, recs, 7)

	got := byKey(recs)
	assert.Equal(Record{Key: KeyVerification, Name: "_amazonses.production", Type: TXT, TTL: 600, Values: []string{"verify-token"}}, got[KeyVerification])
	assert.Equal("bounce.example.com", got[KeyMailFromMX].Name)
	assert.Equal([]string{"10 feedback-smtp.us-east-1.amazonses.com"}, got[KeyMailFromMX].Values)
	assert.Equal(MX, got[KeyMailFromMX].Type)
	assert.Equal("_dmarc.example.com", got[KeyReporting].Name)
	assert.Contains(got[KeyReporting].Values[0], "rua=mailto:admin@example.com")
	assert.Contains(got[KeyReporting].Values[0], "fo=1")
}

func TestAll_staging(t *testing.T) {
	assert := assert.New(t)
	recs, err := All(naming.Default(), inputsFor(t, "staging"), testTokens)
	require.NoError(t, err)

	got := byKey(recs)
	assert.Equal("bounce.staging.example.com", got[KeyMailFromMX].Name)
	assert.Equal("_dmarc.staging.example.com", got[KeyReporting].Name)
	assert.Equal("_amazonses.staging", got[KeyVerification].Name)
}

func TestAll_senderPolicyOnMailFromDomain(t *testing.T) {
	for _, env := range []string{"production", "staging", "dev"} {
		t.Run(env, func(t *testing.T) {
			assert := assert.New(t)
			in := inputsFor(t, env)
			recs, err := All(naming.Default(), in, testTokens)
			require.NoError(t, err)

			spf := byKey(recs)[KeySenderPolicy]
			assert.Equal("bounce."+in.Names.SendDomain, spf.Name)
			assert.NotEqual(in.Names.SendDomain, spf.Name)
			assert.Equal(TXT, spf.Type)
			assert.Equal([]string{"v=spf1 include:amazonses.com mail -all"}, spf.Values)
		})
	}
}

func TestAll_signingRecords(t *testing.T) {
	assert := assert.New(t)
	recs, err := All(naming.Default(), inputsFor(t, "staging"), testTokens)
	require.NoError(t, err)

	var signing []Record
	for _, r := range recs {
		if r.Type == CNAME {
			signing = append(signing, r)
		}
	}
	require.Len(t, signing, 3)
	names := map[string]bool{}
	values := map[string]bool{}
	for i, r := range signing {
		tok := testTokens.Signing[i]
		assert.Equal(SigningKey(i), r.Key)
		assert.Equal(tok+"._domainkey.staging.example.com", r.Name)
		assert.Equal([]string{tok + ".dkim.amazonses.com"}, r.Values)
		names[r.Name] = true
		values[r.Values[0]] = true
	}
	assert.Len(names, 3)
	assert.Len(values, 3)
}

func TestAll_signingTokenCount(t *testing.T) {
	for _, toks := range [][]string{nil, {"a", "b"}, {"a", "b", "c", "d"}} {
		_, err := All(naming.Default(), inputsFor(t, "dev"), Tokens{Verification: "v", Signing: toks})
		assert.ErrorIs(t, err, ErrSigningTokenCount)
	}
}

func TestExpandName(t *testing.T) {
	tests := []struct {
		name, zone, want string
	}{
		{name: "_amazonses.production", zone: "example.com", want: "_amazonses.production.example.com"},
		{name: "bounce.example.com", zone: "example.com", want: "bounce.example.com"},
		{name: "Bounce.Example.com.", zone: "example.com.", want: "bounce.example.com"},
		{name: "", zone: "example.com", want: "example.com"},
		{name: "foo.bar", zone: "", want: "foo.bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandName(tt.name, tt.zone))
		})
	}
}

func TestWriteZone(t *testing.T) {
	assert := assert.New(t)
	recs, err := All(naming.Default(), inputsFor(t, "production"), testTokens)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteZone(&sb, "example.com", recs))
	out := sb.String()

	assert.True(strings.HasPrefix(out, "$ORIGIN example.com.\n"))
	assert.Contains(out, "bounce.example.com.\t600\tIN\tMX\t10 feedback-smtp.us-east-1.amazonses.com.")
	assert.Contains(out, "tok1._domainkey.production.example.com.\t600\tIN\tCNAME\ttok1.dkim.amazonses.com.")
	assert.Contains(out, "_amazonses.production.example.com.\t600\tIN\tTXT\t")
	assert.Equal(7, strings.Count(out, "\tIN\t"))
}

func TestRRs_badMX(t *testing.T) {
	_, err := Record{Key: "x", Name: "a.example.com", Type: MX, TTL: 60, Values: []string{"feedback"}}.RRs("")
	assert.Error(t, err)

	_, err = Record{Key: "x", Name: "a.example.com", Type: MX, TTL: 60, Values: []string{"high host."}}.RRs("")
	assert.Error(t, err)
}

func TestLint(t *testing.T) {
	recs, err := All(naming.Default(), inputsFor(t, "staging"), testTokens)
	require.NoError(t, err)
	assert.NoError(t, Lint("example.com", recs))

	bad := []Record{
		{Key: KeyReporting, Name: "_dmarc.example.com", Type: TXT, TTL: 600, Values: []string{"v=DMARC1; rua=mailto:a@example.com"}},
		{Key: "weird", Name: "x.example.com", Type: "SRV", TTL: 600, Values: []string{"x"}},
	}
	err = Lint("example.com", bad)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), KeyReporting)
		assert.Contains(t, err.Error(), "unsupported type")
	}
}
