package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// extractPDF joins per-page plain text with newlines. A page that yields no
// text, or fails to decode, contributes an empty string.
func extractPDF(content []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("read pdf: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	n := r.NumPage()
	chunks := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		chunks = append(chunks, pageText(r.Page(i), i))
	}
	return strings.Join(chunks, "\n"), nil
}

func pageText(p pdf.Page, num int) string {
	if p.V.IsNull() {
		return ""
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		log.Debug().Err(err).Int("page", num).Msg("pdf page has no extractable text")
		return ""
	}
	return text
}
