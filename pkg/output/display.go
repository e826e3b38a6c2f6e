package output

import (
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ccollicutt/wmslog/pkg/parser"
)

// DateTimeLayout is how log timestamps are shown to people.
const DateTimeLayout = "02.01.2006 15:04:05"

// Placeholders for timestamps that are absent or do not parse.
const (
	NotAvailable = "N/A"
	InvalidDate  = "Invalid Date"
)

var printer = message.NewPrinter(language.English)

// FormatBytes renders a byte count with binary units, e.g. "1.5 KiB".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// FormatDateTime renders a raw log timestamp prefix as dd.MM.yyyy HH:mm:ss.
func FormatDateTime(raw *string, loc *time.Location) string {
	if raw == nil || *raw == "" {
		return NotAvailable
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(parser.TimestampLayout, *raw, loc)
	if err != nil {
		return InvalidDate
	}
	return t.Format(DateTimeLayout)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
