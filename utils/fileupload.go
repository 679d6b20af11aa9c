package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxSketchSize is 10MB in bytes
	MaxSketchSize = 10 * 1024 * 1024
	// AllowedSketchFormat is PNG
	AllowedSketchFormat = ".png"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateSketchFile validates the uploaded design sketch format and size
func ValidateSketchFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxSketchSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxSketchSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != AllowedSketchFormat {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", AllowedSketchFormat),
		}
	}

	return nil
}
