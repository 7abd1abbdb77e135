package usecase

import (
	"fmt"
	"net/http"
	"strings"

	"image-calendar-generator/internal/event"
	"image-calendar-generator/internal/model"
)

// validateImage checks the upload before any provider call spends
// money on it: non-empty, within the size cap, and an allowed image
// type both by declared header and by sniffing the actual bytes.
// The accepted image carries the normalized content type onward.
func (uc *implUseCase) validateImage(input event.ProcessImageInput) (model.RawImage, error) {
	if len(input.Data) == 0 {
		return model.RawImage{}, event.ErrEmptyImage
	}
	if uc.cfg.MaxImageBytes > 0 && int64(len(input.Data)) > uc.cfg.MaxImageBytes {
		return model.RawImage{}, fmt.Errorf("%w: %d bytes, limit %d", event.ErrImageTooLarge, len(input.Data), uc.cfg.MaxImageBytes)
	}

	declared := normalizeMediaType(input.ContentType)
	if !uc.isAllowedType(declared) {
		return model.RawImage{}, fmt.Errorf("%w: %s", event.ErrUnsupportedImageType, declared)
	}

	// The declared header is client-controlled; the sniffed type is not.
	sniffed := normalizeMediaType(http.DetectContentType(input.Data))
	if !uc.isAllowedType(sniffed) {
		return model.RawImage{}, fmt.Errorf("%w: content detected as %s", event.ErrUnsupportedImageType, sniffed)
	}

	return model.RawImage{
		Data:        input.Data,
		ContentType: declared,
		Filename:    input.Filename,
	}, nil
}

func (uc *implUseCase) isAllowedType(mediaType string) bool {
	for _, allowed := range uc.cfg.AllowedImageTypes {
		if mediaType == normalizeMediaType(allowed) {
			return true
		}
	}
	return false
}

// normalizeMediaType lowercases a MIME type and strips parameters like
// "; charset=utf-8".
func normalizeMediaType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}
