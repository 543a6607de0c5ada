// Package upload validates uploaded video files and manages the short-lived
// temp files they are staged in before being sent to the analysis provider.
package upload

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"
)

// MaxVideoSize is the largest accepted upload (10 MiB).
const MaxVideoSize int64 = 10 * 1024 * 1024

// Client-visible validation failures.
var (
	ErrTooLarge        = errors.New("Video file must be less than 10MB")
	ErrUnsupportedType = errors.New("Invalid file type. Only MP4, WebM, MOV, and AVI are allowed.")
)

// AllowedMIMETypes is the content-type allowlist for uploads.
var AllowedMIMETypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"video/x-msvideo": true,
}

// SupportedVideoExtensions maps accepted file extensions to their MIME type.
var SupportedVideoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
}

// Validate accepts a candidate upload only if its MIME type is allowlisted
// and its size is at most MaxVideoSize. It has no side effects.
func Validate(mimeType string, size int64) error {
	if !AllowedMIMETypes[mimeType] {
		return ErrUnsupportedType
	}
	if size > MaxVideoSize {
		return ErrTooLarge
	}
	return nil
}

// NormalizeMIMEType strips parameters and lowercases a declared content type.
// "video/mp4; codecs=avc1" becomes "video/mp4". Returns "" if unparseable.
func NormalizeMIMEType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mediaType
}

// DetectMIMEType resolves the MIME type for an upload: the declared content
// type when present, otherwise a lookup on the filename's extension.
func DetectMIMEType(declared, filename string) string {
	if mt := NormalizeMIMEType(declared); mt != "" && mt != "application/octet-stream" {
		return mt
	}
	return SupportedVideoExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ExtensionFor returns the canonical file extension for an allowed MIME type.
func ExtensionFor(mimeType string) string {
	for ext, mt := range SupportedVideoExtensions {
		if mt == mimeType {
			return ext
		}
	}
	return ""
}
