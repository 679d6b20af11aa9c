package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/calloway-denim/atelier-ops-api/utils"
)

// MockSketchService is a mock implementation of SketchService for testing
type MockSketchService struct {
	uploadedSketches map[string][]byte
	mu               sync.RWMutex
}

// NewMockSketchService creates a new mock sketch service
func NewMockSketchService() *MockSketchService {
	return &MockSketchService{
		uploadedSketches: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global sketch service instance for testing
func (m *MockSketchService) SetAsMockForTesting() {
	SetSketchService(m)
}

// UploadSketch simulates validating and uploading a sketch
func (m *MockSketchService) UploadSketch(fileHeader *multipart.FileHeader) (string, error) {
	// Run the same validation as the real service
	if err := utils.ValidateSketchFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	sketchKey := fmt.Sprintf("sketches/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.uploadedSketches[sketchKey] = content
	m.mu.Unlock()

	return sketchKey, nil
}

// GetSketchURL simulates generating a URL for a sketch
func (m *MockSketchService) GetSketchURL(sketchKey string) (string, error) {
	if sketchKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedSketches[sketchKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("sketch not found in mock storage: %s", sketchKey)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", sketchKey), nil
}

// DeleteSketch simulates deleting a sketch
func (m *MockSketchService) DeleteSketch(sketchKey string) error {
	if sketchKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedSketches, sketchKey)
	m.mu.Unlock()

	return nil
}

// SketchExists checks if a sketch exists in mock storage
func (m *MockSketchService) SketchExists(sketchKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedSketches[sketchKey]
	return exists
}

// Clear removes all sketches from mock storage
func (m *MockSketchService) Clear() {
	m.mu.Lock()
	m.uploadedSketches = make(map[string][]byte)
	m.mu.Unlock()
}
