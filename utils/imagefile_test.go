package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{"png accepted", "chai.png", 1024, ""},
		{"jpg accepted", "samosa.jpg", 1024, ""},
		{"jpeg accepted", "pakora.jpeg", 1024, ""},
		{"uppercase extension accepted", "chai.PNG", 1024, ""},
		{"gif rejected", "chai.gif", 1024, "INVALID_FILE_FORMAT"},
		{"no extension rejected", "chai", 1024, "INVALID_FILE_FORMAT"},
		{"at the size limit", "chai.png", MaxImageSize, ""},
		{"over the size limit", "chai.png", MaxImageSize + 1, "FILE_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     tt.size,
			}

			err := ValidateImageFile(header)
			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			var fileErr *ImageFileError
			assert.ErrorAs(t, err, &fileErr)
			assert.Equal(t, tt.expectedCode, fileErr.Code)
		})
	}
}
