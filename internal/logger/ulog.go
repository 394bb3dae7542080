package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fhuszti/tourism-ms-go/internal/api_context"
)

const serviceName = "tourism-ms"

var std *slog.Logger

// callerHandler appends the authenticated caller (uid, roles) to every record.
type callerHandler struct{ h slog.Handler }

func (c callerHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return c.h.Enabled(ctx, lvl)
}

func (c callerHandler) Handle(ctx context.Context, r slog.Record) error {
	if uid, ok := api_context.AuthUserIDFromContext(ctx); ok {
		r.AddAttrs(slog.String("uid", uid))
		if roles, ok := api_context.AuthRolesFromContext(ctx); ok && len(roles) > 0 {
			r.AddAttrs(slog.String("roles", strings.Join(roles, ",")))
		}
	} else {
		r.AddAttrs(slog.String("uid", "anonymous"))
	}
	return c.h.Handle(ctx, r)
}

func (c callerHandler) WithAttrs(a []slog.Attr) slog.Handler {
	return callerHandler{h: c.h.WithAttrs(a)}
}

func (c callerHandler) WithGroup(n string) slog.Handler {
	return callerHandler{h: c.h.WithGroup(n)}
}

type settings struct {
	level     slog.Leveler
	json      bool
	addSource bool
}

// settingsFromEnv reads
//
//	LOG_FORMAT    json|text (default: json)
//	LOG_LEVEL     debug|info|warn|error (default: info)
//	LOG_SOURCE    true|false (default: false)
func settingsFromEnv() settings {
	src, _ := strconv.ParseBool(os.Getenv("LOG_SOURCE"))
	return settings{
		level:     parseLevel(os.Getenv("LOG_LEVEL")),
		json:      !strings.EqualFold(os.Getenv("LOG_FORMAT"), "text"),
		addSource: src,
	}
}

// Init configures the process-wide logger from the environment.
func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(w io.Writer) {
	cfg := settingsFromEnv()
	opts := &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.addSource}

	var base slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.json {
		base = slog.NewJSONHandler(w, opts)
	}

	// svc sits on the base handler so it prints before uid in text output.
	std = slog.New(callerHandler{h: base}).With("svc", serviceName)
	slog.SetDefault(std)

	// stdlib log.Printf from dependencies has no ctx, so no uid
	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(base, slog.LevelInfo).Writer())
}

func parseLevel(s string) slog.Leveler {
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func emit(ctx context.Context, lvl slog.Level, msg string, attrs ...any) {
	l := std
	if l == nil {
		l = slog.Default()
	}
	l.Log(ctx, lvl, msg, attrs...)
}

func Debug(ctx context.Context, msg string, attrs ...any) { emit(ctx, slog.LevelDebug, msg, attrs...) }
func Info(ctx context.Context, msg string, attrs ...any)  { emit(ctx, slog.LevelInfo, msg, attrs...) }
func Warn(ctx context.Context, msg string, attrs ...any)  { emit(ctx, slog.LevelWarn, msg, attrs...) }
func Error(ctx context.Context, msg string, attrs ...any) { emit(ctx, slog.LevelError, msg, attrs...) }

func Debugf(ctx context.Context, format string, a ...any) {
	emit(ctx, slog.LevelDebug, fmt.Sprintf(format, a...))
}
func Infof(ctx context.Context, format string, a ...any) {
	emit(ctx, slog.LevelInfo, fmt.Sprintf(format, a...))
}
func Warnf(ctx context.Context, format string, a ...any) {
	emit(ctx, slog.LevelWarn, fmt.Sprintf(format, a...))
}
func Errorf(ctx context.Context, format string, a ...any) {
	emit(ctx, slog.LevelError, fmt.Sprintf(format, a...))
}
