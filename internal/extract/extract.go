// Package extract turns downloaded source documents into plain text.
package extract

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/lumenote/grounding/internal/domain"
)

// Extractor reads a local document file and returns its plain text. PDF
// files go through the pdf library; anything else is read as-is. Scanned or
// non-digitized PDFs legitimately yield little or no text; the caller's
// minimum-length validation handles that case.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of the document at path.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeExtraction, "failed to read document", err)
	}
	return string(data), nil
}

func extractPDF(path string) (string, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeExtraction, "failed to open pdf", err)
	}
	defer f.Close()

	plain, err := rdr.GetPlainText()
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeExtraction, "failed to read pdf text", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeExtraction, "failed to buffer pdf text", err)
	}

	return buf.String(), nil
}
