package stack

import (
	"fmt"
	"io"
	"sort"

	"github.com/klothoplatform/sesdomain/pkg/logging"
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/pulumi/pulumi/sdk/v3/go/auto"
	"go.uber.org/zap"
)

// Outputs are the stack outputs exported by the email domain program. The tags must match the
// output names exported by emaildomain.Deploy.
type Outputs struct {
	SmtpPassword      string   `output:"emailUserSmtpPassword"`
	UserId            string   `output:"emailUserId"`
	SendDomain        string   `output:"sendDomain"`
	MailFromDomain    string   `output:"mailFromDomain"`
	VerificationToken string   `output:"verificationToken"`
	DkimTokens        []string `output:"dkimTokens"`

	// Raw holds every output as read, including its secret flag.
	Raw auto.OutputMap `output:"-"`
}

func ParseOutputs(m auto.OutputMap) (Outputs, error) {
	out := Outputs{Raw: m}
	values := make(map[string]any, len(m))
	for k, v := range m {
		values[k] = v.Value
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "output",
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(values); err != nil {
		return out, errors.Wrap(err, "failed to decode stack outputs")
	}
	return out, nil
}

// Tokens are the provider-issued tokens in the form the record builders take.
func (o Outputs) Tokens() records.Tokens {
	return records.Tokens{Verification: o.VerificationToken, Signing: o.DkimTokens}
}

func (o Outputs) keys() []string {
	keys := make([]string, 0, len(o.Raw))
	for k := range o.Raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fields renders the outputs for logging, secrets redacted.
func (o Outputs) Fields() []zap.Field {
	fields := make([]zap.Field, 0, len(o.Raw))
	for _, k := range o.keys() {
		v := o.Raw[k]
		fields = append(fields, logging.OutputField(k, v.Value, v.Secret))
	}
	return fields
}

// Write prints one `name: value` line per output. Secret values are only shown with showSecrets.
func (o Outputs) Write(w io.Writer, showSecrets bool) error {
	for _, k := range o.keys() {
		v := o.Raw[k]
		if _, err := fmt.Fprintf(w, "%s: %s\n", k, logging.DisplayValue(v.Value, v.Secret, showSecrets)); err != nil {
			return err
		}
	}
	return nil
}
