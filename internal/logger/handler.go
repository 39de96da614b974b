package logger

import (
	"context"
	"fmt"
	"go/build"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// New builds a logger writing text or json records to w, source file paths are
// trimmed by rootPath (or GOPATH for dependencies) and the request id found in
// the context under requestIdKey is attached to every record.
func New(w io.Writer, format string, lvl slog.Level, rootPath string, requestIdKey any) (*slog.Logger, error) {
	ho := slog.HandlerOptions{
		Level: lvl,
	}

	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(w, &ho)
	case "text":
		h = slog.NewTextHandler(w, &ho)
	default:
		return nil, fmt.Errorf("log format must be json or text, got %q", format)
	}

	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		gopath = build.Default.GOPATH
	}

	return slog.New(&handler{
		baseHandler:  h,
		rootPath:     strings.TrimSuffix(rootPath, "/") + "/",
		goPath:       strings.TrimSuffix(gopath, "/") + "/",
		requestIdKey: requestIdKey,
	}), nil
}

// SetupSLog installs the logger from New as the slog default, writing to stderr.
func SetupSLog(format string, lvl slog.Level, rootPath string, requestIdKey any) error {
	l, err := New(os.Stderr, format, lvl, rootPath, requestIdKey)
	if err != nil {
		return err
	}

	slog.SetDefault(l)
	return nil
}

type handler struct {
	baseHandler  slog.Handler
	rootPath     string
	goPath       string
	requestIdKey any
}

func (e *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return e.baseHandler.Enabled(ctx, level)
}

func (e *handler) Handle(ctx context.Context, record slog.Record) error {
	record = record.Clone()

	if record.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := fs.Next()
		record.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: f.Function,
			File:     e.trimPath(f.File),
			Line:     f.Line,
		}))
	}

	if e.requestIdKey != nil {
		if requestId, ok := ctx.Value(e.requestIdKey).(string); ok && requestId != "" {
			record.AddAttrs(slog.String("request_id", requestId))
		}
	}

	return e.baseHandler.Handle(ctx, record)
}

func (e *handler) trimPath(file string) string {
	if strings.HasPrefix(file, e.rootPath) {
		return file[len(e.rootPath):]
	} else if strings.HasPrefix(file, e.goPath) {
		return file[len(e.goPath):]
	}

	return file
}

func (e *handler) clone(h slog.Handler) *handler {
	return &handler{
		baseHandler:  h,
		rootPath:     e.rootPath,
		goPath:       e.goPath,
		requestIdKey: e.requestIdKey,
	}
}

func (e *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return e.clone(e.baseHandler.WithAttrs(attrs))
}

func (e *handler) WithGroup(name string) slog.Handler {
	return e.clone(e.baseHandler.WithGroup(name))
}
