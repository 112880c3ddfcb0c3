package clicommon

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity is the -v flag. Each bare -v raises it by one; it also accepts a level name or number.
type Verbosity int

const (
	VerbosityQuiet Verbosity = iota
	// VerbosityDebug enables debug logging for sesctl itself.
	VerbosityDebug
	// VerbosityEngine also streams the Pulumi engine's progress output.
	VerbosityEngine
)

var verbosityNames = map[string]Verbosity{
	"quiet":  VerbosityQuiet,
	"debug":  VerbosityDebug,
	"engine": VerbosityEngine,
}

// engineLevels quiet the engine progress stream below VerbosityEngine.
var engineLevels = map[string]zapcore.Level{
	"stack.engine": zap.InfoLevel,
}

func (v *Verbosity) Set(s string) error {
	if named, ok := verbosityNames[s]; ok {
		*v = named
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		l, intErr := strconv.Atoi(s)
		if intErr != nil || l < 0 {
			return errors.Errorf("invalid verbosity %q: expected quiet, debug, engine or a count", s)
		}
		*v = Verbosity(l)
		return nil
	}
	if b {
		*v++
	} else if *v > VerbosityQuiet {
		*v--
	}
	return nil
}

func (v *Verbosity) Type() string {
	return "verbosity"
}

func (v *Verbosity) String() string {
	return strconv.Itoa(int(*v))
}

func (v Verbosity) Debug() bool {
	return v >= VerbosityDebug
}

func (v Verbosity) EngineOutput() bool {
	return v >= VerbosityEngine
}

// Levels are the per-logger default levels for this verbosity; nil lets every logger through
// at the core level.
func (v Verbosity) Levels() map[string]zapcore.Level {
	if v.EngineOutput() {
		return nil
	}
	return engineLevels
}
