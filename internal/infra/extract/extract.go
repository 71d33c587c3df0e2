// Package extract pulls raw text out of uploaded documents.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/mentorflow/mentorflow/internal/domain/submission"
)

// Extractor implements submission.Extractor for plain text, DOCX and PDF.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Detect returns the document format for filename based on its extension.
func Detect(filename string) (submission.Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return submission.FormatText, nil
	case ".docx":
		return submission.FormatDOCX, nil
	case ".pdf":
		return submission.FormatPDF, nil
	default:
		return "", submission.ErrUnsupportedFormat
	}
}

// Extract returns the text of content, dispatching on the extension of filename.
func (e *Extractor) Extract(content []byte, filename string) (string, error) {
	format, err := Detect(filename)
	if err != nil {
		return "", err
	}
	switch format {
	case submission.FormatDOCX:
		return extractDOCX(content)
	case submission.FormatPDF:
		return extractPDF(content)
	default:
		return extractText(content), nil
	}
}
