package usecase

import (
	"path/filepath"
	"strings"
)

// Allowed upload types. Webp is accepted on the gallery endpoint only.
var (
	productImageTypes = map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
	}
	galleryImageTypes = map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
		"image/webp": true,
	}

	productImageExts = map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
	}
	galleryImageExts = map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".webp": true,
	}
)

// isAllowedImage checks MIME type and file extension against the
// allow-list of the endpoint.
func isAllowedImage(contentType, filename string, allowWebp bool) bool {
	types, exts := productImageTypes, productImageExts
	if allowWebp {
		types, exts = galleryImageTypes, galleryImageExts
	}

	if !types[strings.ToLower(contentType)] {
		return false
	}

	ext := strings.ToLower(filepath.Ext(filename))
	return exts[ext]
}
