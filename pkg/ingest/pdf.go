package ingest

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFIngestor extracts plain text from PDF bytes, one segment per page.
type PDFIngestor struct{}

var _ Ingestor = &PDFIngestor{}

func NewPDFIngestor() *PDFIngestor {
	return &PDFIngestor{}
}

func (in *PDFIngestor) Ingest(ctx context.Context, filename string, data []byte) (segments []Segment, err error) {
	if !Accepted(filename) {
		return nil, ErrUnsupportedFormat
	}

	// The pdf package panics on some malformed inputs; surface those as
	// parse failures so one corrupt file cannot take down the request.
	defer func() {
		if r := recover(); r != nil {
			segments = nil
			err = &ParseError{Filename: filename, Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &ParseError{Filename: filename, Err: err}
		}

		segments = append(segments, Segment{Text: text, Page: pageNum})
	}

	return segments, nil
}
