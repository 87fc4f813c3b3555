package constants

import (
	"path/filepath"
	"strings"
)

// DocType is the canonical document type handled by the normalizer.
type DocType string

const (
	DocTypeInvoice      DocType = "INVOICE"
	DocTypePrescription DocType = "PRESCRIPTION"
	DocTypeUnknown      DocType = "UNKNOWN"
)

// AllowedExtensions holds the file extensions accepted for analysis.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether a normalized extension is accepted.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

// DetectDocType routes a file to a document type by filename keyword.
func DetectDocType(path string) DocType {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "invoice"):
		return DocTypeInvoice
	case strings.Contains(name, "prescription"):
		return DocTypePrescription
	default:
		return DocTypeUnknown
	}
}
