package utils

import (
	"path/filepath"
	"strings"

	"dealdesk/models"
)

// DetectAttachmentType classifies an uploaded file by its name.
// declared is the kind of the upload slot the file came from and is used when
// the name says nothing useful.
func DetectAttachmentType(filename, declared string) string {
	name := strings.ToLower(filepath.Base(filename))

	hasLicense := strings.Contains(name, "license") || strings.Contains(name, "licence")
	switch {
	case hasLicense && (strings.Contains(name, "driver") || strings.Contains(name, "driving")):
		return models.AttachmentDriverLicense
	case hasLicense && (strings.Contains(name, "car") || strings.Contains(name, "vehicle")):
		return models.AttachmentCarLicense
	case strings.Contains(name, "transfer"):
		return models.AttachmentTransferDocument
	}

	switch declared {
	case models.AttachmentCarLicense, models.AttachmentDriverLicense, models.AttachmentTransferDocument:
		return declared
	}
	return models.AttachmentOther
}

// IsImageFile reports whether the extension is one the image optimizer understands
func IsImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
