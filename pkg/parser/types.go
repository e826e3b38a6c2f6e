// Package parser reads WMS transfer logs and classifies their lines.
package parser

// LogLine is a single line read from a log source.
type LogLine struct {
	// Content is the line text without the terminating line feed.
	Content string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// FileInfo describes the file a log was acquired from.
// It is passed through to the analysis result, never derived from content.
type FileInfo struct {
	// Name is the base name of the file.
	Name string `json:"name" msgpack:"name"`

	// Size is the on-disk size of the file in bytes.
	Size int64 `json:"size" msgpack:"size"`
}
