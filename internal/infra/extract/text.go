package extract

import "strings"

// extractText decodes UTF-8, dropping invalid byte sequences.
func extractText(content []byte) string {
	return strings.ToValidUTF8(string(content), "")
}
