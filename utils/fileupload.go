package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// allowedImageFormats are the extensions accepted for design images
var allowedImageFormats = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// allowedOrderFileFormats are the extensions accepted for order reference
// files (sketches, fabric photos, fitting documents)
var allowedOrderFileFormats = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".pdf":  true,
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates an uploaded design image's format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	return validate(fileHeader, allowedImageFormats)
}

// ValidateOrderFile validates an uploaded order reference file's format and size
func ValidateOrderFile(fileHeader *multipart.FileHeader) error {
	return validate(fileHeader, allowedOrderFileFormats)
}

func validate(fileHeader *multipart.FileHeader, allowed map[string]bool) error {
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowed[ext] {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("File type %s is not allowed", ext),
		}
	}

	return nil
}

// FileTypeFor returns the order file type bucket for a filename extension
func FileTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return "image"
	case ".pdf":
		return "document"
	default:
		return "other"
	}
}
