package parser

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrUnreadable marks failures to acquire a log file's content.
var ErrUnreadable = errors.New("failed to read the file")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Compression identifies the encoding of a log stream.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// ReaderSource implements LineSource over an io.Reader.
// Lines are split on line feed only, so a trailing carriage return stays in
// the content and a final line feed yields one last empty line.
type ReaderSource struct {
	reader      *bufio.Reader
	closer      io.Closer
	compression Compression
	lineNum     int
	done        bool
}

// NewReaderSource creates a LineSource reading plain text from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{reader: bufio.NewReaderSize(r, 64*1024), compression: CompressionNone}
}

// Compression reports how the underlying file was encoded.
func (s *ReaderSource) Compression() Compression {
	return s.compression
}

// Next returns the next line.
// Returns io.EOF after the last line has been returned.
func (s *ReaderSource) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.done {
		return nil, io.EOF
	}

	text, err := s.reader.ReadString('\n')
	switch {
	case err == nil:
		text = text[:len(text)-1]
	case errors.Is(err, io.EOF):
		s.done = true
	default:
		return nil, fmt.Errorf("reading line %d: %w", s.lineNum+1, err)
	}

	s.lineNum++
	return &LogLine{Content: text, LineNum: s.lineNum}, nil
}

// Close releases resources.
func (s *ReaderSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// Open opens a log file for line-by-line reading.
// Gzip and zstd content is detected by magic bytes and decompressed transparently.
// Errors wrap ErrUnreadable.
func Open(path string) (*ReaderSource, FileInfo, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, FileInfo{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, FileInfo{}, fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}

	info := FileInfo{Name: filepath.Base(path), Size: st.Size()}

	r, closer, kind, err := decompress(f)
	if err != nil {
		_ = f.Close()
		return nil, FileInfo{}, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}

	src := NewReaderSource(r)
	src.closer = closer
	src.compression = kind
	return src, info, nil
}

// DetectCompression peeks at the head of r and reports its compression.
func DetectCompression(r *bufio.Reader) Compression {
	head, _ := r.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// decompress wraps f in the decoder its content needs. The returned closer
// releases both the decoder and f.
func decompress(f *os.File) (io.Reader, io.Closer, Compression, error) {
	br := bufio.NewReader(f)
	kind := DetectCompression(br)

	switch kind {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, kind, fmt.Errorf("opening gzip stream: %w", err)
		}
		return zr, multiCloser{zr, f}, kind, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, kind, fmt.Errorf("opening zstd stream: %w", err)
		}
		return zr, multiCloser{zr.IOReadCloser(), f}, kind, nil
	default:
		return br, f, kind, nil
	}
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var errs []error
	for _, c := range m {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
