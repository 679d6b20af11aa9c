package services

import (
	"fmt"
	"mime/multipart"

	"github.com/calloway-denim/atelier-ops-api/utils"
)

// SketchService handles design sketch attachments on orders: upload,
// URL generation, and deletion
type SketchService interface {
	// UploadSketch validates and uploads a sketch file, returns the storage key
	UploadSketch(fileHeader *multipart.FileHeader) (string, error)

	// GetSketchURL generates a URL for accessing an uploaded sketch
	GetSketchURL(sketchKey string) (string, error)

	// DeleteSketch removes a sketch from storage
	DeleteSketch(sketchKey string) error
}

// S3SketchService implements SketchService using AWS S3 for storage
type S3SketchService struct {
	s3Service S3Interface
}

var sketchServiceInstance SketchService

// InitSketchService initializes the sketch service with S3 backend
func InitSketchService(s3Service S3Interface) SketchService {
	sketchServiceInstance = &S3SketchService{
		s3Service: s3Service,
	}
	return sketchServiceInstance
}

// GetSketchService returns the initialized sketch service instance
func GetSketchService() SketchService {
	return sketchServiceInstance
}

// SetSketchService sets the sketch service instance (primarily for testing)
func SetSketchService(service SketchService) {
	sketchServiceInstance = service
}

// UploadSketch validates and uploads a sketch file to S3
func (s *S3SketchService) UploadSketch(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateSketchFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload sketch: %w", err)
	}

	return s3Key, nil
}

// GetSketchURL generates a presigned URL for an uploaded sketch
func (s *S3SketchService) GetSketchURL(sketchKey string) (string, error) {
	if sketchKey == "" {
		return "", nil
	}
	return s.s3Service.GetPresignedURL(sketchKey)
}

// DeleteSketch removes a sketch from S3
func (s *S3SketchService) DeleteSketch(sketchKey string) error {
	if sketchKey == "" {
		return nil
	}
	return s.s3Service.DeleteFile(sketchKey)
}
