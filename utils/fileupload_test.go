package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name    string
		header  *multipart.FileHeader
		wantErr string
	}{
		{"png accepted", header("sketch.png", 1024), ""},
		{"jpeg accepted", header("fabric.JPEG", 2048), ""},
		{"webp accepted", header("photo.webp", 2048), ""},
		{"pdf rejected for images", header("pattern.pdf", 1024), "INVALID_FILE_FORMAT"},
		{"exe rejected", header("malware.exe", 1024), "INVALID_FILE_FORMAT"},
		{"no extension rejected", header("noext", 1024), "INVALID_FILE_FORMAT"},
		{"too large rejected", header("big.png", MaxFileSize + 1), "FILE_TOO_LARGE"},
		{"exactly max size accepted", header("max.png", MaxFileSize), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageFile(tt.header)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			uploadErr, ok := err.(*FileUploadError)
			assert.True(t, ok, "error should be a FileUploadError")
			assert.Equal(t, tt.wantErr, uploadErr.Code)
		})
	}
}

func TestValidateOrderFile(t *testing.T) {
	assert.NoError(t, ValidateOrderFile(header("pattern.pdf", 1024)))
	assert.NoError(t, ValidateOrderFile(header("sketch.png", 1024)))
	assert.Error(t, ValidateOrderFile(header("notes.docx", 1024)))
}

func TestFileTypeFor(t *testing.T) {
	assert.Equal(t, "image", FileTypeFor("a.png"))
	assert.Equal(t, "image", FileTypeFor("b.JPG"))
	assert.Equal(t, "document", FileTypeFor("c.pdf"))
	assert.Equal(t, "other", FileTypeFor("d.zip"))
}
