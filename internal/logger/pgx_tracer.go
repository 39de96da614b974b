package logger

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
)

// NewPGXTracer forwards pgx query logs to l. Query arguments are dropped, they may
// carry subscriber emails.
func NewPGXTracer(l *slog.Logger) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   tracelog.LoggerFunc(pgxLogFunc(l)),
		LogLevel: tracelog.LogLevelDebug,
	}
}

func pgxLogFunc(logger *slog.Logger) func(ctx context.Context, l tracelog.LogLevel, msg string, data map[string]any) {
	return func(ctx context.Context, l tracelog.LogLevel, msg string, data map[string]any) {
		lvl, known := pgxLevel(l)
		if !logger.Enabled(ctx, lvl) {
			return
		}

		attrs := make([]slog.Attr, 0, len(data)+1)
		for k, v := range data {
			switch k {
			case "args", "pid":
			default:
				attrs = append(attrs, slog.Any(k, v))
			}
		}

		sort.Slice(attrs, func(i, j int) bool {
			return attrs[i].Key < attrs[j].Key
		})

		if !known {
			attrs = append(attrs, slog.Any("pgx_level", l))
		}

		var pcs [1]uintptr
		// skip [runtime.Callers, this closure, LoggerFunc.Log, TraceLog method, pgx caller]
		runtime.Callers(5, pcs[:])

		r := slog.NewRecord(time.Now(), lvl, msg, pcs[0])
		r.AddAttrs(attrs...)
		_ = logger.Handler().Handle(ctx, r)
	}
}

func pgxLevel(l tracelog.LogLevel) (slog.Level, bool) {
	switch l {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug, tracelog.LogLevelInfo:
		return slog.LevelDebug, true
	case tracelog.LogLevelWarn:
		return slog.LevelWarn, true
	case tracelog.LogLevelError:
		return slog.LevelError, true
	default:
		return slog.LevelError, false
	}
}
