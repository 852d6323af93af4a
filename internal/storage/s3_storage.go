package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	MaxLogoSize = 5 << 20
	logoFolder  = "logos"
)

var (
	ErrUploadDisabled     = errors.New("object storage is not configured")
	ErrEmptyFile          = errors.New("file is empty")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedContent = errors.New("file type is not allowed")
)

var allowedLogoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadedFile is where an object ended up
type UploadedFile struct {
	URL string
	Key string
}

// LogoUploader stores business logos
type LogoUploader interface {
	Enabled() bool
	UploadLogo(ctx context.Context, contentType string, size int64, body io.Reader) (*UploadedFile, error)
}

// objectPutter is the slice of the S3 client the uploader needs
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Storage struct {
	client  objectPutter
	bucket  string
	region  string
	baseURL string
}

// NewS3Storage builds an uploader. With no bucket configured the uploader is
// disabled and every upload returns ErrUploadDisabled.
func NewS3Storage(ctx context.Context, region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	storage := &S3Storage{
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	if bucket == "" || accessKeyID == "" || secretAccessKey == "" {
		return storage
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		cfg = aws.Config{
			Region:      region,
			Credentials: credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		}
	}

	storage.client = s3.NewFromConfig(cfg)
	return storage
}

func newS3StorageWithClient(client objectPutter, region, bucket, baseURL string) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *S3Storage) Enabled() bool {
	return s != nil && s.client != nil
}

// UploadLogo validates and stores one logo under logos/<uuid><ext>
func (s *S3Storage) UploadLogo(ctx context.Context, contentType string, size int64, body io.Reader) (*UploadedFile, error) {
	if !s.Enabled() {
		return nil, ErrUploadDisabled
	}
	if err := ValidateFileSize(size, MaxLogoSize); err != nil {
		return nil, err
	}
	ext, err := ValidateContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s%s", logoFolder, uuid.New().String(), ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	return &UploadedFile{URL: s.fileURL(key), Key: key}, nil
}

func (s *S3Storage) fileURL(key string) string {
	if s.baseURL != "" {
		// CloudFront or custom domain
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// ValidateFileSize validates the file size
func ValidateFileSize(size int64, maxSize int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, maxSize)
	}
	return nil
}

// ValidateContentType accepts image types only and returns their extension
func ValidateContentType(contentType string) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := allowedLogoTypes[mediaType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContent, contentType)
	}
	return ext, nil
}
