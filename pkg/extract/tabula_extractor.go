package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/docx"
)

// TabulaExtractor parses PDF and DOCX documents with tsawler/tabula. The
// library reads from the filesystem, so uploads are staged in a temp file.
type TabulaExtractor struct{}

func NewTabulaExtractor() Extractor {
	return &TabulaExtractor{}
}

func (e *TabulaExtractor) Extract(ctx context.Context, filename string, data []byte) ([]Page, error) {
	switch Ext(filename) {
	case ".pdf":
		return e.extractPdf(ctx, data)
	case ".docx", ".doc":
		return e.extractDocx(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
	}
}

func (e *TabulaExtractor) extractPdf(ctx context.Context, data []byte) ([]Page, error) {
	path, cleanup, err := stageTempFile(data, "*.pdf")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ex := tabula.Open(path)
	defer ex.Close()

	pageCount, err := ex.PageCount()
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	pages := make([]Page, 0, pageCount)
	for n := 1; n <= pageCount; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, _, err := ex.Pages(n).Text()
		if err != nil {
			return nil, fmt.Errorf("extract pdf page %d: %w", n, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		pageNum := n
		pages = append(pages, Page{Text: text, PageNumber: &pageNum})
	}

	return pages, nil
}

func (e *TabulaExtractor) extractDocx(data []byte) ([]Page, error) {
	path, cleanup, err := stageTempFile(data, "*.docx")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	r, err := docx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		return nil, fmt.Errorf("extract docx text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	// DOCX flows continuously, there is no stable page numbering.
	return []Page{{Text: text}}, nil
}

func stageTempFile(data []byte, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", "ingest-"+pattern)
	if err != nil {
		return "", nil, fmt.Errorf("stage upload: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("stage upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("stage upload: %w", err)
	}

	return f.Name(), func() { os.Remove(f.Name()) }, nil
}
