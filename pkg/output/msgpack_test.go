package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestMsgpackFormatter_Format(t *testing.T) {
	f := NewMsgpackFormatter(FormatOptions{})
	if f.Name() != "msgpack" {
		t.Errorf("Name() = %q, want msgpack", f.Name())
	}

	report := createTestReport()
	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded Report
	if err := msgpack.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid msgpack: %v", err)
	}

	if decoded.ID != report.ID {
		t.Errorf("ID = %q, want %q", decoded.ID, report.ID)
	}
	if decoded.Result == nil || decoded.Result.SentDataCount != 2 {
		t.Fatalf("Result = %+v", decoded.Result)
	}
	if got := decoded.Result.ElapsedTimeData.Values(); len(got) != 2 || got[1] != 300 {
		t.Errorf("ElapsedTimeData values = %v", got)
	}
	if decoded.Metadata.Duration != report.Metadata.Duration {
		t.Errorf("Duration = %v, want %v", decoded.Metadata.Duration, report.Metadata.Duration)
	}
}

func TestMsgpackFormatter_Format_Quiet(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMsgpackFormatter(FormatOptions{Quiet: true}).Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var s Summary
	if err := msgpack.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("Output is not a msgpack summary: %v", err)
	}
	if s.ErrorCount != 1 || s.SentDataCount != 2 || s.LinesProcessed != 4 {
		t.Errorf("Summary = %+v", s)
	}
}
