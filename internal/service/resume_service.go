package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"placement/internal/config"
	"placement/internal/models"
	"placement/internal/observability"
	"placement/internal/validation"
)

const (
	DefaultResumeUploadDir       = "/tmp/placement/uploads/resumes"
	DefaultResumeMaxUploadSizeMB = 5
)

// UploadResumeInput carries one resume file.
type UploadResumeInput struct {
	Filename string
	Content  []byte
}

// ResumeService stores uploaded resumes on disk, content-addressed, and
// returns a locally resolvable reference. Completion can be deferred by a
// fixed simulated processing delay; a zero delay disables it.
type ResumeService struct {
	uploadDir          string
	maxUploadSizeBytes int64
	delay              time.Duration
}

// NewResumeService returns a ResumeService configured from cfg; nil cfg
// falls back to defaults.
func NewResumeService(cfg *config.Config) *ResumeService {
	uploadDir := DefaultResumeUploadDir
	maxUploadSizeMB := DefaultResumeMaxUploadSizeMB
	delay := time.Duration(0)

	if cfg != nil {
		if cfg.ResumeUploadDir != "" {
			uploadDir = cfg.ResumeUploadDir
		}
		if cfg.ResumeMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ResumeMaxUploadSizeMB
		}
		if cfg.ResumeUploadDelayMS > 0 {
			delay = time.Duration(cfg.ResumeUploadDelayMS) * time.Millisecond
		}
	}

	return &ResumeService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		delay:              delay,
	}
}

// Upload validates and stores the file, waits out the simulated processing
// delay, and returns the reference. The write itself is not cancellable;
// ctx only cuts the delay short.
func (s *ResumeService) Upload(ctx context.Context, in UploadResumeInput) (*models.ResumeRef, error) {
	if err := validation.ValidateResumeFilename(in.Filename); err != nil {
		observability.ResumeUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Content) == 0 {
		observability.ResumeUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("resume file is empty")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		observability.ResumeUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(
			fmt.Sprintf("resume exceeds the %d MB upload limit", s.maxUploadSizeBytes/(1024*1024)))
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		observability.ResumeUploads.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}

	sum := sha256.Sum256(in.Content)
	stored := hex.EncodeToString(sum[:]) + ".pdf"
	path := filepath.Join(s.uploadDir, stored)

	if err := os.WriteFile(path, in.Content, 0o644); err != nil {
		observability.ResumeUploads.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, models.NewInternalError(ctx.Err())
		}
	}

	observability.ResumeUploads.WithLabelValues("ok").Inc()
	return &models.ResumeRef{
		URL:  "/uploads/resumes/" + stored,
		Name: in.Filename,
		Size: int64(len(in.Content)),
	}, nil
}

// UploadDir returns the directory uploads are written to, so the server can
// mount it as a static route.
func (s *ResumeService) UploadDir() string {
	return s.uploadDir
}
