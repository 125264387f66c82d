package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ksysoev/traceid/pkg/display"
	"github.com/ksysoev/traceid/pkg/traceid"
	"github.com/mattn/go-isatty"
)

var generatorNames = []string{
	traceid.GeneratorUUID,
	traceid.GeneratorUUIDv7,
	traceid.GeneratorXID,
	traceid.GeneratorSonyflake,
}

// RunGenerateCommand prints gen.Count identifiers produced by the generator named in gen.
// Logs go to errOut so that out only carries the generated ids.
// It returns an error if the count or format is invalid or the generator cannot be created.
func RunGenerateCommand(ctx context.Context, arg *args, gen *generateArgs, out, errOut io.Writer) error {
	if gen.Count < 1 {
		return fmt.Errorf("count must be greater than 0")
	}

	if err := display.ValidateFormat(gen.Format); err != nil {
		return err
	}

	arg.Interactive = isInteractive(out)

	if err := initLoggerTo(errOut, arg); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	d := display.New(out, errOut, arg.Interactive)

	generator, err := traceid.Lookup(gen.Generator)
	if err != nil {
		hint := ""
		if errors.Is(err, traceid.ErrUnknownGenerator) {
			hint = "available generators: " + strings.Join(generatorNames, ", ")
		}

		d.ShowError("Failed to create trace id generator", err, hint)

		return err
	}

	ids := make([]string, 0, gen.Count)
	for range gen.Count {
		ids = append(ids, generator.Generate())
	}

	slog.DebugContext(ctx, "trace ids generated", slog.String("generator", gen.Generator), slog.Int("count", len(ids)))

	return d.ShowTraceIDs(gen.Format, gen.Generator, ids)
}

// isInteractive reports whether w is a terminal.
func isInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
