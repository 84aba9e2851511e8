package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFIngestorRejectsWrongExtension(t *testing.T) {
	in := NewPDFIngestor()

	_, err := in.Ingest(context.Background(), "notes.txt", []byte("plain text"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPDFIngestorCorruptBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty file", data: nil},
		{name: "not a pdf", data: []byte("just some text pretending to be a pdf")},
		{name: "truncated header", data: []byte("%PDF-1.4\ngarbage")},
	}

	in := NewPDFIngestor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := in.Ingest(context.Background(), "broken.pdf", tt.data)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "want ParseError, got %v", err)
			assert.Equal(t, "broken.pdf", parseErr.Filename)
		})
	}
}

func TestAccepted(t *testing.T) {
	assert.True(t, Accepted("report.pdf"))
	assert.True(t, Accepted("REPORT.PDF"))
	assert.False(t, Accepted("notes.txt"))
	assert.False(t, Accepted("archive.pdf.zip"))
	assert.False(t, Accepted("pdf"))
}
