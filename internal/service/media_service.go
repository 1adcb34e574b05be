package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"orbit/internal/config"
	"orbit/internal/models"
	"orbit/internal/observability"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultUploadDir       = "/tmp/orbit/uploads"
	DefaultMaxUploadSizeMB = 10
	ImageMaxSize           = 2048
	JPEGQuality            = 82
	WebPQuality            = 70
)

// UploadInput is an uploaded file held in memory.
type UploadInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// MediaService validates and stores uploaded images and post attachments.
// Images are normalized to JPEG with a WebP sibling; other attachment types
// are stored as-is.
type MediaService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewMediaService returns a new MediaService.
func NewMediaService(cfg *config.Config) *MediaService {
	uploadDir := DefaultUploadDir
	maxUploadSizeMB := DefaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MaxUploadSizeMB
		}
	}

	return &MediaService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// ImagesDir is where processed images land, served under /images.
func (s *MediaService) ImagesDir() string {
	return filepath.Join(s.uploadDir, "images")
}

// FilesDir is where non-image attachments land, served under /files.
func (s *MediaService) FilesDir() string {
	return filepath.Join(s.uploadDir, "files")
}

// SaveImage validates, decodes, bounds and re-encodes an uploaded image, then
// stores it under a generated name. Returns the stored filename.
func (s *MediaService) SaveImage(in UploadInput) (string, error) {
	if err := s.checkSize(in); err != nil {
		return "", err
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return "", models.NewValidationError("Unsupported image format")
	}

	bounded := resizeToFit(decoded, ImageMaxSize, ImageMaxSize)

	encodedJPG, err := encodeJPEG(bounded, JPEGQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	encodedWebP, err := encodeWebP(bounded, WebPQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String() + ".jpg"
	if err := writeBytesToFile(filepath.Join(s.ImagesDir(), name), encodedJPG); err != nil {
		return "", models.NewInternalError(err)
	}
	webpName := strings.TrimSuffix(name, ".jpg") + ".webp"
	if err := writeBytesToFile(filepath.Join(s.ImagesDir(), webpName), encodedWebP); err != nil {
		_ = os.Remove(filepath.Join(s.ImagesDir(), name))
		return "", models.NewInternalError(err)
	}

	observability.UploadsProcessed.WithLabelValues("image").Inc()
	return name, nil
}

// SaveAttachment stores one post attachment. Images go through the image
// pipeline; everything else is written untouched into the files directory.
func (s *MediaService) SaveAttachment(in UploadInput) (string, error) {
	detectedType := http.DetectContentType(in.Content)
	if isAllowedImageMIME(detectedType) {
		return s.SaveImage(in)
	}

	if err := s.checkSize(in); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if ext == "" {
		ext = ".bin"
	}
	name := uuid.New().String() + ext
	if err := writeBytesToFile(filepath.Join(s.FilesDir(), name), in.Content); err != nil {
		return "", models.NewInternalError(err)
	}

	observability.UploadsProcessed.WithLabelValues("file").Inc()
	return name, nil
}

func (s *MediaService) checkSize(in UploadInput) error {
	if len(in.Content) == 0 {
		return models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}
	return nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
