package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"placement/internal/config"
	"placement/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResumeService(t *testing.T) *ResumeService {
	t.Helper()
	return NewResumeService(&config.Config{
		ResumeUploadDir:       t.TempDir(),
		ResumeMaxUploadSizeMB: 1,
	})
}

func TestResumeService_Upload(t *testing.T) {
	t.Parallel()
	svc := newTestResumeService(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4 fake resume body")

	ref, err := svc.Upload(ctx, UploadResumeInput{Filename: "My Resume.PDF", Content: content})
	require.NoError(t, err)
	assert.Equal(t, "My Resume.PDF", ref.Name)
	assert.Equal(t, int64(len(content)), ref.Size)

	sum := sha256.Sum256(content)
	wantFile := hex.EncodeToString(sum[:]) + ".pdf"
	assert.Equal(t, "/uploads/resumes/"+wantFile, ref.URL)

	stored, err := os.ReadFile(filepath.Join(svc.UploadDir(), wantFile))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestResumeService_Upload_SameContentSamePath(t *testing.T) {
	t.Parallel()
	svc := newTestResumeService(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4 shared body")
	first, err := svc.Upload(ctx, UploadResumeInput{Filename: "a.pdf", Content: content})
	require.NoError(t, err)
	second, err := svc.Upload(ctx, UploadResumeInput{Filename: "b.pdf", Content: content})
	require.NoError(t, err)

	assert.Equal(t, first.URL, second.URL, "identical content lands at one path")

	entries, err := os.ReadDir(svc.UploadDir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestResumeService_Upload_Rejections(t *testing.T) {
	t.Parallel()
	svc := newTestResumeService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input UploadResumeInput
	}{
		{"non-pdf extension", UploadResumeInput{Filename: "resume.docx", Content: []byte("x")}},
		{"no extension", UploadResumeInput{Filename: "resume", Content: []byte("x")}},
		{"empty content", UploadResumeInput{Filename: "resume.pdf", Content: nil}},
		{"over the size limit", UploadResumeInput{Filename: "resume.pdf", Content: make([]byte, 2*1024*1024)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tc.input)
			assert.True(t, models.HasCode(err, models.CodeValidation))
		})
	}
}

func TestResumeService_Upload_DelayCancelled(t *testing.T) {
	t.Parallel()
	svc := NewResumeService(&config.Config{
		ResumeUploadDir:       t.TempDir(),
		ResumeMaxUploadSizeMB: 1,
		ResumeUploadDelayMS:   60_000,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Upload(ctx, UploadResumeInput{Filename: "resume.pdf", Content: []byte("x")})
	assert.Error(t, err)
}

func TestResumeService_Defaults(t *testing.T) {
	t.Parallel()
	svc := NewResumeService(nil)
	assert.Equal(t, DefaultResumeUploadDir, svc.UploadDir())
}
