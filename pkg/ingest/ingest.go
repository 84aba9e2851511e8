package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// AcceptedExtension is the only document type the system indexes. Files with
// any other extension are skipped at the upload boundary, not rejected.
const AcceptedExtension = ".pdf"

// Segment is one extracted unit of document text with its position.
type Segment struct {
	Text string
	Page int
}

// Ingestor parses raw document bytes into ordered text segments.
type Ingestor interface {
	Ingest(ctx context.Context, filename string, data []byte) ([]Segment, error)
}

// ErrUnsupportedFormat is returned when a filename does not carry the
// accepted extension.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ParseError reports a byte stream that is not a valid instance of its
// declared format.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Accepted reports whether the filename carries the accepted extension.
func Accepted(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), AcceptedExtension)
}
