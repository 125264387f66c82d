package display

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats supported by ShowTraceIDs.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = fmt.Errorf("unknown output format, expected one of %s, %s, %s", FormatText, FormatJSON, FormatYAML)

type idsDocument struct {
	Generator string   `json:"generator" yaml:"generator"`
	TraceIDs  []string `json:"trace_ids" yaml:"trace_ids"`
}

// ValidateFormat reports whether format is one ShowTraceIDs can render.
func ValidateFormat(format string) error {
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return nil
}

// ShowTraceIDs writes ids produced by the named generator in the requested format.
// Text output prints one id per line, numbered in interactive mode.
func (d *Display) ShowTraceIDs(format, generator string, ids []string) error {
	switch format {
	case FormatText:
		return d.showText(ids)
	case FormatJSON:
		return d.showJSON(idsDocument{Generator: generator, TraceIDs: ids})
	case FormatYAML:
		return d.showYAML(idsDocument{Generator: generator, TraceIDs: ids})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (d *Display) showText(ids []string) error {
	if !d.interactive {
		for _, id := range ids {
			if _, err := fmt.Fprintln(d.out, id); err != nil {
				return err
			}
		}

		return nil
	}

	indexColor := d.color(color.FgHiBlack)
	idColor := d.color(color.FgGreen)

	width := len(fmt.Sprint(len(ids)))

	for i, id := range ids {
		if _, err := indexColor.Fprintf(d.out, "%*d ", width, i+1); err != nil {
			return err
		}

		if _, err := idColor.Fprintln(d.out, id); err != nil {
			return err
		}
	}

	return nil
}

// showJSON writes doc as indented JSON, colorized through colorjson when colors are enabled.
func (d *Display) showJSON(doc idsDocument) error {
	if d.noColor {
		enc := json.NewEncoder(d.out)
		enc.SetIndent("", "  ")

		return enc.Encode(doc)
	}

	ids := make([]any, 0, len(doc.TraceIDs))
	for _, id := range doc.TraceIDs {
		ids = append(ids, id)
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	f.KeyColor = d.color(color.FgMagenta)
	f.StringColor = d.color(color.FgYellow)

	output, err := f.Marshal(map[string]any{
		"generator": doc.Generator,
		"trace_ids": ids,
	})
	if err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}

	_, err = fmt.Fprintf(d.out, "%s\n", output)

	return err
}

func (d *Display) showYAML(doc idsDocument) error {
	enc := yaml.NewEncoder(d.out)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to format YAML: %w", err)
	}

	return enc.Close()
}
