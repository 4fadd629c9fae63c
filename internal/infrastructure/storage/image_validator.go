package storage

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
)

type ImageValidator struct {
	MaxSize int64 // bytes
}

func NewImageValidator() *ImageValidator {
	return &ImageValidator{MaxSize: 5 * 1024 * 1024} // 5MB
}

// Validate check JPEG/PNG và size trước khi upload.
// Trả về format ("jpeg"/"png") để build content type.
func (v *ImageValidator) Validate(data []byte) (string, error) {
	if int64(len(data)) > v.MaxSize {
		return "", fmt.Errorf("image exceeds %dMB", v.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}
