package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxImageBytes caps a decoded recipe image
const maxImageBytes = 10 << 20

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// StoredImage is an uploaded image and where it can be fetched from
type StoredImage struct {
	Key string
	URL string
}

// ImageService turns base64 data URIs from recipe payloads into stored
// objects
type ImageService struct {
	store ImageStore
}

// NewImageService creates a new ImageService instance
func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// Save decodes a data URI such as "data:image/png;base64,iVBOR..." and
// uploads it under a fresh key
func (s *ImageService) Save(ctx context.Context, dataURI string) (*StoredImage, error) {
	data, contentType, err := decodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recipes/images/%s%s", uuid.New().String(), imageExtensions[contentType])
	url, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	log.Debug().Str("key", key).Int("bytes", len(data)).Msg("stored recipe image")
	return &StoredImage{Key: key, URL: url}, nil
}

// Discard removes an image that ended up unused. Failures are only logged.
func (s *ImageService) Discard(ctx context.Context, img *StoredImage) {
	if img == nil {
		return
	}
	if err := s.store.Delete(ctx, img.Key); err != nil {
		log.Warn().Err(err).Str("key", img.Key).Msg("failed to remove orphaned image")
	}
}

func decodeDataURI(dataURI string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, "", ValidationError("image", "image must be a base64 encoded data URI")
	}
	declared := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ValidationError("image", "image is not valid base64")
	}
	if len(data) == 0 {
		return nil, "", ValidationError("image", "image is empty")
	}
	if len(data) > maxImageBytes {
		return nil, "", ValidationError("image", "image is too large")
	}

	detected := http.DetectContentType(data)
	if _, ok := imageExtensions[detected]; !ok {
		return nil, "", ValidationError("image", "upload a valid image: png, jpeg, gif or webp")
	}
	if declared != "" && declared != detected {
		log.Debug().Str("declared", declared).Str("detected", detected).Msg("image content type mismatch")
	}
	return data, detected, nil
}
