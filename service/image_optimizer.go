package service

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	// attachments are scans and phone photos of documents; text must stay legible
	attachmentMaxDim  = 1600
	attachmentQuality = 80
)

// OptimizeAttachment re-encodes an attachment image as JPEG, no larger than
// attachmentMaxDim on its longest side. EXIF orientation is applied first.
func OptimizeAttachment(imageData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > attachmentMaxDim || height > attachmentMaxDim {
		var newWidth, newHeight int
		if width > height {
			newWidth = attachmentMaxDim
			newHeight = int(float64(height) * float64(attachmentMaxDim) / float64(width))
		} else {
			newHeight = attachmentMaxDim
			newWidth = int(float64(width) * float64(attachmentMaxDim) / float64(height))
		}
		zap.S().Debugf("🔄 Resizing attachment: %dx%d -> %dx%d", width, height, newWidth, newHeight)
		img = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: attachmentQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	zap.S().Debugf("✓ Attachment optimized: %d -> %d bytes", len(imageData), buf.Len())
	return buf.Bytes(), nil
}
