package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type StoredFile struct {
	Filename     string
	Path         string
	OriginalName string
}

type StorageService interface {
	Save(originalName string, src io.Reader) (*StoredFile, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
	now        func() time.Time
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		now:        time.Now,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// Save copies src into the upload directory under a collision-free name of
// the form <unix-millis>_<short-uuid>_<sanitized original name>.
func (s *storageService) Save(originalName string, src io.Reader) (*StoredFile, error) {
	base := sanitizeFilename(originalName)
	uniqueFilename := fmt.Sprintf("%d_%s_%s", s.now().UnixMilli(), uuid.New().String()[:8], base)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	dst, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{
		Filename:     uniqueFilename,
		Path:         filePath,
		OriginalName: originalName,
	}, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// sanitizeFilename keeps the base name (and so the extension the extractor
// dispatches on) but drops path components and unusual characters.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "resume"
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)

	if strings.Trim(cleaned, "._") == "" {
		return "resume"
	}
	return cleaned
}
