package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStorageSaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir)
	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("EnsureUploadDir() failed: %v", err)
	}

	stored, err := storage.Save("My Resume.PDF", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if !strings.HasSuffix(stored.Filename, "_My_Resume.PDF") {
		t.Fatalf("unexpected stored filename: %s", stored.Filename)
	}
	if stored.OriginalName != "My Resume.PDF" {
		t.Fatalf("unexpected original name: %s", stored.OriginalName)
	}
	if stored.Path != storage.GetFilePath(stored.Filename) {
		t.Fatalf("path mismatch: %s vs %s", stored.Path, storage.GetFilePath(stored.Filename))
	}

	data, err := os.ReadFile(stored.Path)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := storage.DeleteFile(stored.Filename); err != nil {
		t.Fatalf("DeleteFile() failed: %v", err)
	}
	if _, err := os.Stat(stored.Path); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed")
	}
}

func TestStorageNamesDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	fixed := time.UnixMilli(1700000000000)
	storage := &storageService{uploadPath: dir, now: func() time.Time { return fixed }}

	first, err := storage.Save("cv.docx", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	second, err := storage.Save("cv.docx", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if first.Filename == second.Filename {
		t.Fatalf("expected distinct filenames, got %s twice", first.Filename)
	}
	if !strings.HasPrefix(first.Filename, "1700000000000_") {
		t.Fatalf("expected timestamp prefix, got %s", first.Filename)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"resume.pdf":            "resume.pdf",
		"../../etc/passwd":      "passwd",
		`C:\Users\me\cv.docx`:   "cv.docx",
		"Résumé 2024.docx":      "R_sum__2024.docx",
		"":                      "resume",
		"...":                   "resume",
	}

	for input, want := range tests {
		if got := sanitizeFilename(input); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", input, got, want)
		}
	}
}
