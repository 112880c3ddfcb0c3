package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klothoplatform/sesdomain/pkg/dnscheck"
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `environment: staging
region: us-east-1
base_domain: example.com
zone_id: Z123
admin_email: admin@example.com
`

func runSesctl(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sesdomain.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o644))

	t.Cleanup(func() {
		planConfig.format = "text"
		planConfig.verificationToken = ""
		planConfig.dkimTokens = nil
	})

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath, "--color", "never"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestPlanCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name: "text",
			args: []string{"plan"},
			contains: []string{
				"Email domain staging.example.com (environment staging) in zone example.com",
				"unresolved-dkim-token-3._domainkey.staging.example.com",
			},
		},
		{
			name: "zone with known tokens",
			args: []string{"plan", "--format", "zone",
				"--verification-token", "abc", "--dkim-token", "t1", "--dkim-token", "t2", "--dkim-token", "t3"},
			contains: []string{
				"$ORIGIN example.com.",
				"_amazonses.staging.example.com.\t600\tIN\tTXT\t\"abc\"",
				"t2._domainkey.staging.example.com.\t600\tIN\tCNAME\tt2.dkim.amazonses.com.",
			},
		},
		{
			name:     "dot",
			args:     []string{"plan", "-f", "dot"},
			contains: []string{"digraph"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSesctl(t, tt.args...)
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
		})
	}
}

func TestPlanCmd_errors(t *testing.T) {
	_, err := runSesctl(t, "plan", "--dkim-token", "only-one")
	assert.ErrorIs(t, err, records.ErrSigningTokenCount)

	_, err = runSesctl(t, "plan", "--format", "png")
	assert.ErrorContains(t, err, "unknown format")
}

func TestDownCmd_requiresConfirmation(t *testing.T) {
	_, err := runSesctl(t, "down")
	assert.ErrorContains(t, err, "--yes")
}

func TestKnownTokens(t *testing.T) {
	tokens := knownTokens("", nil)
	assert.Equal(t, "unresolved-verification-token", tokens.Verification)
	assert.Len(t, tokens.Signing, 3)

	tokens = knownTokens("v", []string{"a", "b", "c"})
	assert.Equal(t, records.Tokens{Verification: "v", Signing: []string{"a", "b", "c"}}, tokens)
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	err := writeResults(&buf, []dnscheck.Result{
		{Record: records.Record{Key: "verification", Type: records.TXT}, Name: "_amazonses.example.com.", Status: dnscheck.StatusOK},
		{Record: records.Record{Key: "dkim-1", Type: records.CNAME}, Name: "t1._domainkey.example.com.", Status: dnscheck.StatusMissing,
			Expected: []string{"t1.dkim.amazonses.com."}},
		{Record: records.Record{Key: "reporting-policy", Type: records.TXT}, Name: "_dmarc.example.com.", Status: dnscheck.StatusMismatch,
			Expected: []string{"v=DMARC1; p=none"}, Found: []string{"v=DMARC1; p=reject"}},
		{Record: records.Record{Key: "mail-from-mx", Type: records.MX}, Name: "bounce.example.com.", Status: dnscheck.StatusError,
			Err: errors.New("timeout")},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "STATUS"))
	assert.Contains(t, lines[2], "expected t1.dkim.amazonses.com.")
	assert.Contains(t, lines[3], "expected v=DMARC1; p=none, found v=DMARC1; p=reject")
	assert.Contains(t, lines[4], "timeout")
}
