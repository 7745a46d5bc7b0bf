package extract

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFileType is returned before any bytes are parsed.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Page is one logical page of extracted text. PageNumber is nil for formats
// without a page concept (docx).
type Page struct {
	Text       string
	PageNumber *int
}

// Extractor turns raw document bytes into per-page plain text. A malformed
// document fails the whole extraction, never partial text.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) ([]Page, error)
}

// Supported reports whether the filename's extension is an ingestible type.
func Supported(filename string) bool {
	switch Ext(filename) {
	case ".pdf", ".docx", ".doc":
		return true
	}
	return false
}

func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
