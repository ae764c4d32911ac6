package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"devevent/internal/domain"
)

// DefaultMaxBytes is the upload limit applied when Config.MaxBytes is zero.
const DefaultMaxBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Config configures the S3-compatible image host.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Folder    string
	// PublicURL is the base URL objects are served from. When empty it is
	// derived from the endpoint and bucket.
	PublicURL string
	MaxBytes  int64
}

// objectPutter is the subset of *minio.Client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ImageUploader stores event images in a MinIO/S3 bucket.
type ImageUploader struct {
	client    objectPutter
	bucket    string
	folder    string
	publicURL string
	maxBytes  int64
}

// NewImageUploader connects to the image host and makes sure the bucket exists.
func NewImageUploader(ctx context.Context, cfg Config) (*ImageUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if cfg.PublicURL == "" {
		cfg.PublicURL = fmt.Sprintf("%s/%s", client.EndpointURL().String(), cfg.Bucket)
	}
	return newImageUploader(client, cfg), nil
}

func newImageUploader(client objectPutter, cfg Config) *ImageUploader {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &ImageUploader{
		client:    client,
		bucket:    cfg.Bucket,
		folder:    strings.Trim(cfg.Folder, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		maxBytes:  maxBytes,
	}
}

// Upload validates data as an image and stores it under <folder>/<uuid><ext>.
// It returns the public URL of the stored object. Every failure wraps domain.ErrUpload.
func (u *ImageUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	contentType, ext, err := u.inspect(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrUpload, filename, err)
	}

	key := objectKey(u.folder, uuid.NewString(), ext)
	_, err = u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}
	return u.objectURL(key), nil
}

func (u *ImageUploader) inspect(data []byte) (contentType, ext string, err error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("file is empty")
	}
	if int64(len(data)) > u.maxBytes {
		return "", "", fmt.Errorf("file is %d bytes, limit is %d", len(data), u.maxBytes)
	}
	contentType = http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("unsupported content type %q", contentType)
	}
	return contentType, ext, nil
}

func objectKey(folder, id, ext string) string {
	if folder == "" {
		return id + ext
	}
	return path.Join(folder, id+ext)
}

func (u *ImageUploader) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	return u.publicURL + "/" + escaped
}

var _ domain.ImageUploader = (*ImageUploader)(nil)

type disabledUploader struct{}

// Disabled returns an uploader that rejects every upload. It is used when no
// image host is configured.
func Disabled() domain.ImageUploader {
	return disabledUploader{}
}

func (disabledUploader) Upload(context.Context, string, []byte) (string, error) {
	return "", fmt.Errorf("%w: no image host configured", domain.ErrUpload)
}
