package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"dealdesk/logger"
	"dealdesk/models"
	"dealdesk/utils"
)

// DriveService stores deal attachments in a Google Drive folder
type DriveService struct {
	client   *drive.Service
	folderID string
	log      *zap.SugaredLogger
}

var _ AttachmentUploaderInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath, folderID string, log *zap.SugaredLogger) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:   driveService,
		folderID: folderID,
		log:      logger.OrGlobal(log),
	}, nil
}

// UploadMany uploads every file independently. A failed file is reported in its
// result and does not stop the others.
func (ds *DriveService) UploadMany(ctx context.Context, dealID int64, files []UploadFile) []UploadResult {
	results := make([]UploadResult, 0, len(files))
	for _, f := range files {
		res := UploadResult{
			FileName:       f.FileName,
			AttachmentType: utils.DetectAttachmentType(f.FileName, f.Slot),
		}

		data, contentType := f.Data, f.ContentType
		if utils.IsImageFile(f.FileName) {
			if optimized, err := OptimizeAttachment(data); err != nil {
				ds.log.Warnf("⚠️ Could not optimize %s, uploading original: %v", f.FileName, err)
			} else {
				data, contentType = optimized, "image/jpeg"
			}
		}

		file, err := ds.client.Files.Create(&drive.File{
			Name:     objectName(dealID, f.FileName),
			Parents:  []string{ds.folderID},
			MimeType: contentType,
		}).Media(bytes.NewReader(data)).Fields("id").Context(ctx).Do()
		if err != nil {
			ds.log.Errorf("❌ Upload of %s for deal %d failed: %v", f.FileName, dealID, err)
			res.Err = fmt.Errorf("failed to upload %s: %w", f.FileName, err)
			results = append(results, res)
			continue
		}

		res.URL = fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id)
		res.UploadedAt = time.Now().UTC()
		ds.log.Infof("📎 Uploaded %s for deal %d as %s", f.FileName, dealID, res.AttachmentType)
		results = append(results, res)
	}
	return results
}

// objectName prefixes the stored file with the deal id and a random component
func objectName(dealID int64, fileName string) string {
	base := strings.ReplaceAll(filepath.Base(fileName), " ", "_")
	return fmt.Sprintf("deal_%d/%s_%s", dealID, uuid.NewString(), base)
}

// Attachments converts the successful results into deal attachments
func Attachments(results []UploadResult) models.Attachments {
	out := models.Attachments{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		out = append(out, models.Attachment{
			Name:       r.FileName,
			Type:       r.AttachmentType,
			URL:        r.URL,
			UploadedAt: r.UploadedAt,
		})
	}
	return out
}
