package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const Redacted = "<redacted>"

type outputField struct {
	value  any
	secret bool
}

func (f outputField) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("secret", f.secret)
	if f.secret {
		enc.AddString("value", Redacted)
		return nil
	}
	return enc.AddReflected("value", f.value)
}

// OutputField logs a stack output, never including the value of a secret.
func OutputField(name string, value any, secret bool) zap.Field {
	return zap.Object(name, outputField{value: value, secret: secret})
}

// DisplayValue renders an output value for humans, hiding secrets unless showSecrets is set.
func DisplayValue(value any, secret, showSecrets bool) string {
	if secret && !showSecrets {
		return Redacted
	}
	return fmt.Sprint(value)
}
