package submissions

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	domain "github.com/mentorflow/mentorflow/internal/domain/submission"
)

// Service implements the upload use-case.
// Artifacts is optional; when nil, uploads are not archived.
type Service struct {
	Extractor domain.Extractor
	Artifacts domain.ArtifactStore
}

// UploadCommand is one uploaded file.
type UploadCommand struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Upload extracts the file's text and returns a preview of it.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (domain.Submission, error) {
	text, err := s.Extractor.Extract(cmd.Content, cmd.Filename)
	if err != nil {
		return domain.Submission{}, err
	}
	log.Info().
		Str("filename", cmd.Filename).
		Int("bytes", len(cmd.Content)).
		Int("text_len", len(text)).
		Msg("submission extracted")

	if s.Artifacts != nil {
		s.archive(ctx, cmd)
	}

	return domain.Submission{
		ID:          domain.StubID,
		TextPreview: domain.Preview(text),
		Status:      domain.StatusUploaded,
	}, nil
}

// archive stores the raw upload. Failures are logged only.
func (s *Service) archive(ctx context.Context, cmd UploadCommand) {
	key := ObjectKey(cmd.Filename)
	contentType := cmd.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.Artifacts.Put(ctx, key, contentType, cmd.Content)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("archive upload failed")
		return
	}
	log.Debug().Str("key", key).Str("url", url).Msg("upload archived")
}

// ObjectKey builds a unique archive key keeping the file's extension.
func ObjectKey(filename string) string {
	return fmt.Sprintf("submissions/%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
}
