package services

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/h2non/bimg"
)

// ImageValidator reports whether a payload decodes as a raster image.
type ImageValidator interface {
	Validate(data []byte) error
}

// bimgValidator validates uploads with libvips via bimg.
type bimgValidator struct{}

// NewImageValidator returns the default bimg-backed validator.
func NewImageValidator() ImageValidator {
	return bimgValidator{}
}

func (bimgValidator) Validate(data []byte) error {
	if len(data) == 0 {
		return ErrNotAnImage
	}
	if bimg.DetermineImageType(data) == bimg.UNKNOWN {
		return ErrNotAnImage
	}
	if _, err := bimg.NewImage(data).Size(); err != nil {
		return ErrNotAnImage
	}
	return nil
}

// RecipeImagePath builds the storage path for an uploaded recipe image:
// uploads/recipe/<random-id><ext>, with the extension taken verbatim from
// the uploaded filename.
func RecipeImagePath(filename string) string {
	return filepath.Join("uploads", "recipe", uuid.New().String()+filepath.Ext(filename))
}
