package services

import (
	"mime/multipart"

	"github.com/asharma-dev/chai-counter-api/utils"
)

// MockImageService is an ImageService backed by MockS3Service for tests
type MockImageService struct {
	s3 *MockS3Service
}

// NewMockImageService creates a mock image service with its own mock S3
func NewMockImageService() *MockImageService {
	return &MockImageService{s3: NewMockS3Service()}
}

// SetAsMockForTesting installs this mock as the global image service
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates and stores a photo in the mock S3
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}
	return m.s3.UploadFile(fileHeader)
}

// GetImageURL returns a fake presigned URL for a stored photo
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	return m.s3.GetPresignedURL(imageKey)
}

// DeleteImage removes a photo from the mock storage
func (m *MockImageService) DeleteImage(imageKey string) error {
	return m.s3.DeleteFile(imageKey)
}

// HasImage reports whether a photo key exists in the mock storage
func (m *MockImageService) HasImage(imageKey string) bool {
	return m.s3.HasFile(imageKey)
}
