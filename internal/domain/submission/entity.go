package submission

// Format is the document format detected from an upload's file extension.
type Format string

const (
	FormatText Format = "txt"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// Status enum
type Status string

const (
	StatusUploaded Status = "uploaded"
)

// StubID is returned for every upload; submissions are not tracked.
const StubID int64 = 1

// PreviewLimit is the number of characters returned in TextPreview.
const PreviewLimit = 1000

// Submission is the upload response body.
type Submission struct {
	ID          int64  `json:"submissionId"`
	TextPreview string `json:"textPreview"`
	Status      Status `json:"status"`
}

// Preview returns the first PreviewLimit characters of text.
func Preview(text string) string {
	n := 0
	for i := range text {
		if n == PreviewLimit {
			return text[:i]
		}
		n++
	}
	return text
}
