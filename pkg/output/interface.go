package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders analysis results in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, msgpack).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds run details and series sizes.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}

// NewFormatter returns the formatter for name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "msgpack":
		return NewMsgpackFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, or msgpack)", name)
	}
}

// IsMachineReadable reports whether a format is meant for programs rather than people.
func IsMachineReadable(name string) bool {
	return name == "json" || name == "msgpack"
}
