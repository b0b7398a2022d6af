package order

import (
	"fmt"
	"strings"

	apperrors "medisearch/internal/common/errors"
	"medisearch/internal/models"
)

// MaxAttachmentBytes is the inclusive upper bound on prescription uploads:
// a 5,242,880-byte file passes, one byte more fails.
const MaxAttachmentBytes = 5 * 1024 * 1024

var allowedAttachmentTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"application/pdf": {},
}

// ValidateAttachment checks the mime type and size of an uploaded
// prescription. It is a pre-condition independent of the gate: it runs on
// every present attachment, even when no prescription is required. A nil
// attachment is valid here; whether one is mandatory is the gate's call.
func ValidateAttachment(att *models.Attachment) error {
	if att == nil {
		return nil
	}

	if _, ok := allowedAttachmentTypes[normalizeMimeType(att.MimeType)]; !ok {
		return apperrors.NewInvalidAttachmentError(
			fmt.Sprintf("unsupported file type %q, allowed: jpeg, png, pdf", att.MimeType))
	}

	if att.SizeBytes <= 0 {
		return apperrors.NewInvalidAttachmentError("empty file")
	}
	if att.SizeBytes > MaxAttachmentBytes {
		return apperrors.NewInvalidAttachmentError(
			fmt.Sprintf("file is %d bytes, limit is %d", att.SizeBytes, MaxAttachmentBytes))
	}

	return nil
}

// normalizeMimeType accepts both full mime types and bare extensions as
// upload metadata arrives from different clients.
func normalizeMimeType(mime string) string {
	m := strings.ToLower(strings.TrimSpace(mime))
	switch m {
	case "jpeg", "jpg", "image/jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	}
	return m
}
