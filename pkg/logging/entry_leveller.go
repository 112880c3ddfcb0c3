package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// EntryLeveller is a zapcore.Core that filters entries by logger name. A level set for "stack"
// also applies to "stack.up" unless "stack.up" has its own level; "" sets a catch-all.
type EntryLeveller struct {
	zapcore.Core

	levels map[string]zapcore.Level
}

func NewEntryLeveller(core zapcore.Core, levels map[string]zapcore.Level) *EntryLeveller {
	copied := make(map[string]zapcore.Level, len(levels))
	for k, v := range levels {
		copied[k] = v
	}
	return &EntryLeveller{Core: core, levels: copied}
}

func (el *EntryLeveller) With(f []zapcore.Field) zapcore.Core {
	return &EntryLeveller{Core: el.Core.With(f), levels: el.levels}
}

// Enabled reports true when either the core or any configured logger accepts the level, so that
// lowered per-logger levels are not filtered out before Check.
func (el *EntryLeveller) Enabled(lvl zapcore.Level) bool {
	if el.Core.Enabled(lvl) {
		return true
	}
	for _, l := range el.levels {
		if lvl >= l {
			return true
		}
	}
	return false
}

// levelFor returns the most specific configured level for the logger name.
func (el *EntryLeveller) levelFor(name string) (zapcore.Level, bool) {
	for name != "" {
		if lvl, ok := el.levels[name]; ok {
			return lvl, true
		}
		idx := strings.LastIndexByte(name, '.')
		if idx < 0 {
			break
		}
		name = name[:idx]
	}
	lvl, ok := el.levels[""]
	return lvl, ok
}

func (el *EntryLeveller) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	lvl, ok := el.levelFor(e.LoggerName)
	if !ok {
		return el.Core.Check(e, ce)
	}
	if e.Level < lvl {
		return ce
	}
	return ce.AddCore(e, el)
}
