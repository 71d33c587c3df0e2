package submission

import "context"

// Extractor port (text extraction per file format)
type Extractor interface {
	Extract(content []byte, filename string) (string, error)
}

// ArtifactStore port (archive of raw uploads)
type ArtifactStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
