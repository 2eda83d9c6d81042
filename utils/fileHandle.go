package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize caps each uploaded file at 1 MB
const MaxUploadSize = 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".mp4":  true,
	".webm": true,
	".docx": true,
	".pdf":  true,
	".txt":  true,
}

// ValidateUpload rejects files outside the extension allow-list or over
// the size cap.
func ValidateUpload(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file type is not supported")
	}
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file exceeds the 1 MB size limit")
	}
	return nil
}

// SaveUploadedFile stores a validated upload under destDir with a
// unique name and returns the stored path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	if err := ValidateUpload(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// GetFileURL maps a stored path to its public URL
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filepath.Base(filePath)
}
