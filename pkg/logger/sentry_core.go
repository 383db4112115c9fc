package logger

import (
	"fmt"
	"math"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SentryCore 把达到指定等级的日志条目转发到Sentry
type SentryCore struct {
	level        zapcore.Level
	fields       []zapcore.Field
	flushTimeout time.Duration
}

func NewSentryCore(level zapcore.Level) zapcore.Core {
	return &SentryCore{
		level:        level,
		flushTimeout: 5 * time.Second,
		fields:       make([]zapcore.Field, 0),
	}
}

func (c *SentryCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

func (c *SentryCore) With(f []zapcore.Field) zapcore.Core {
	clone := c.clone()
	clone.fields = append(clone.fields, f...)
	return clone
}

func (c *SentryCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c *SentryCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	newFields := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	newFields = append(newFields, c.fields...)
	newFields = append(newFields, fields...)

	meta := fieldToSentryMeta(newFields)

	sentry.WithScope(func(scope *sentry.Scope) {
		if len(newFields) > 0 {
			scope.SetExtras(meta)
		}
		scope.SetLevel(sentryLevel(ent.Level))
		sentry.CaptureMessage(ent.Message)

		if ent.Level > zapcore.ErrorLevel {
			c.Sync()
		}
	})
	return nil
}

func (c *SentryCore) Sync() error {
	sentry.Flush(c.flushTimeout)
	return nil
}

func (c *SentryCore) clone() *SentryCore {
	newFields := make([]zapcore.Field, 0, len(c.fields))
	newFields = append(newFields, c.fields...)
	return &SentryCore{
		level:        c.level,
		fields:       newFields,
		flushTimeout: c.flushTimeout,
	}
}

func fieldToSentryMeta(fields []zapcore.Field) map[string]interface{} {
	retMap := make(map[string]interface{})

	for _, f := range fields {
		switch f.Type {
		case zapcore.BoolType:
			retMap[f.Key] = f.Integer == 1
		case zapcore.ByteStringType:
			retMap[f.Key] = string(f.Interface.([]byte))
		case zapcore.DurationType:
			retMap[f.Key] = time.Duration(f.Integer)
		case zapcore.Float64Type:
			retMap[f.Key] = math.Float64frombits(uint64(f.Integer))
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
			retMap[f.Key] = f.Integer
		case zapcore.StringType:
			retMap[f.Key] = f.String
		case zapcore.TimeFullType:
			retMap[f.Key] = f.Interface.(time.Time)
		case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
			retMap[f.Key] = uint64(f.Integer)
		case zapcore.ReflectType:
			retMap[f.Key] = f.Interface
		case zapcore.ErrorType:
			retMap[f.Key] = f.Interface.(error).Error()
		case zapcore.NamespaceType, zapcore.SkipType, zapcore.StringerType:
			continue
		default:
			retMap[f.Key] = fmt.Sprintf("%v", f.Interface)
		}
	}

	return retMap
}

func sentryLevel(lvl zapcore.Level) sentry.Level {
	switch lvl {
	case zapcore.DebugLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	default:
		// 未识别的等级按fatal处理
		return sentry.LevelFatal
	}
}
