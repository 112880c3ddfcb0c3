package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type LogOpts struct {
	Verbose bool
	// Color is one of "auto" (default), "always"/"on" or "never"/"off".
	Color string
	// Encoding is "console" (default) or "json".
	Encoding      string
	DefaultLevels map[string]zapcore.Level
}

func (opts LogOpts) useColor() bool {
	switch opts.Color {
	case "always", "on":
		return true
	case "never", "off":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

func (opts LogOpts) Encoder() zapcore.Encoder {
	switch opts.Encoding {
	case "json":
		if opts.Verbose {
			return zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig())
		}
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	case "console", "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		if opts.useColor() {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.NewConsoleEncoder(cfg)

	default:
		panic(fmt.Errorf("unknown encoding %q", opts.Encoding))
	}
}

// Levels returns the per-logger levels, with LOG_LEVEL (e.g. "stack=debug,dnscheck=warn")
// replacing the defaults when set.
func (opts LogOpts) Levels() map[string]zapcore.Level {
	levelEnv, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return opts.DefaultLevels
	}
	levels := make(map[string]zapcore.Level)
	for _, v := range strings.Split(levelEnv, ",") {
		k, v, ok := strings.Cut(v, "=")
		if !ok {
			continue
		}
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			continue
		}
		levels[strings.TrimSpace(k)] = lvl
	}
	return levels
}

func (opts LogOpts) NewCore(w zapcore.WriteSyncer) zapcore.Core {
	leveller := zap.NewAtomicLevelAt(zap.InfoLevel)
	if opts.Verbose {
		leveller.SetLevel(zap.DebugLevel)
	}

	core := zapcore.NewCore(opts.Encoder(), w, leveller)
	if levels := opts.Levels(); len(levels) > 0 {
		core = NewEntryLeveller(core, levels)
	}
	return core
}

func (opts LogOpts) NewLogger() *zap.Logger {
	return zap.New(opts.NewCore(zapcore.Lock(os.Stderr)))
}
