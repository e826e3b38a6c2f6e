package output

import (
	"context"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackFormatter formats reports as MessagePack.
type MsgpackFormatter struct {
	opts FormatOptions
}

// NewMsgpackFormatter creates a new MessagePack formatter with the given options.
func NewMsgpackFormatter(opts FormatOptions) *MsgpackFormatter {
	return &MsgpackFormatter{opts: opts}
}

// Name returns the format name.
func (f *MsgpackFormatter) Name() string {
	return "msgpack"
}

// Format renders the report as MessagePack.
func (f *MsgpackFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	enc := msgpack.NewEncoder(w)

	if f.opts.Quiet {
		return enc.Encode(report.Summary)
	}
	return enc.Encode(report)
}
