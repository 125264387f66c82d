package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextHandler is a custom slog.Handler that enriches log records with application-specific attributes.
// It embeds a slog.Handler and adds the application name and version to every record.
type ContextHandler struct {
	slog.Handler
	ver string
	app string
}

// Handle adds the "app" and "ver" attributes before delegating to the embedded handler.

//nolint:gocritic // ignore this linting rule
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("app", h.app), slog.String("ver", h.ver))

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the application attributes on derived handlers.
func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs), ver: h.ver, app: h.app}
}

// WithGroup keeps the application attributes on derived handlers.
func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name), ver: h.ver, app: h.app}
}

// initLogger initializes the default logger for the application using slog, writing to stdout.
// It returns an error if the configured log level cannot be parsed.
func initLogger(arg *args) error {
	return initLoggerTo(os.Stdout, arg)
}

func initLoggerTo(w io.Writer, arg *args) error {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(arg.LogLevel)); err != nil {
		return err
	}

	options := &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: createReplacer(arg),
	}

	var logHandler slog.Handler
	if arg.TextFormat {
		logHandler = slog.NewTextHandler(w, options)
	} else {
		logHandler = slog.NewJSONHandler(w, options)
	}

	ctxHandler := &ContextHandler{
		Handler: logHandler,
		ver:     arg.Version,
		app:     "traceid",
	}

	logger := slog.New(ctxHandler)

	slog.SetDefault(logger)

	return nil
}

// createReplacer creates a function to selectively modify log attributes when the application is in interactive mode.
// It disables attributes like "time", "app", "ver", and "level" if the arg.Interactive flag is true.
// Returns a function that filters out specific log attributes or nil if interactive mode is disabled.
func createReplacer(arg *args) func(group []string, a slog.Attr) slog.Attr {
	if !arg.Interactive {
		return nil
	}

	return func(_ []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case "time", "app", "ver", "level":
			return slog.Attr{}
		default:
			return a
		}
	}
}
