package service

import (
	"context"
	"time"
)

// UploadFile is one file attached to a deal submission.
// Slot is the kind of document the user attached it as, and may be empty.
type UploadFile struct {
	Slot        string
	FileName    string
	ContentType string
	Data        []byte
}

// UploadResult reports the outcome for one UploadFile
type UploadResult struct {
	FileName       string
	AttachmentType string
	URL            string
	UploadedAt     time.Time
	Err            error
}

// AttachmentUploaderInterface defines the contract for attachment storage
type AttachmentUploaderInterface interface {
	UploadMany(ctx context.Context, dealID int64, files []UploadFile) []UploadResult
}
