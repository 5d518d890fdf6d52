package constants

import "strings"

// DocFormat is the coarse document format sent to the OCR service.
type DocFormat string

const (
	PDF   DocFormat = "PDF"
	IMAGE DocFormat = "IMAGE"
)

// SupportedExtensions holds the file extensions accepted for contract scans.
var SupportedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"pdf":  {},
	"tif":  {},
	"tiff": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsSupportedExt reports whether a raw extension (with or without dot) is an
// accepted scan format.
func IsSupportedExt(ext string) bool {
	_, ok := SupportedExtensions[NormalizeExt(ext)]
	return ok
}

// MapExtToFormat buckets an already-normalized extension into a DocFormat.
// Unknown extensions map to IMAGE; the OCR service rejects what it cannot
// decode.
func MapExtToFormat(ext string) DocFormat {
	if ext == "pdf" {
		return PDF
	}
	return IMAGE
}
