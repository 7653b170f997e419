package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/server/config"
)

// MaxUploadSize caps direct image uploads at 5 MB.
const MaxUploadSize = 5 * 1024 * 1024

// hooks for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// FileService issues presigned object-storage URLs for browser uploads and
// stores generated images directly.
type FileService struct {
	config *config.Config
}

func NewFileService(cfg *config.Config) *FileService {
	return &FileService{config: cfg}
}

// GetRandomStorageKey builds a date-sharded object key for user uploads.
func GetRandomStorageKey(ext string) string {
	d := time.Now()
	key := fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
	if ext != "" {
		key += "." + ext
	}
	return key
}

func (s *FileService) s3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func (s *FileService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	return newS3PresignClient(client), nil
}

// GetPresignedPutUrl returns a storage key and a presigned PUT URL for an
// image upload. Only common image content types are allowed and the object
// size is capped at MaxUploadSize.
func (s *FileService) GetPresignedPutUrl(ctx context.Context, contentType string, size int64) (string, string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported content type %q", common.ErrorValidation, contentType)
	}
	if size <= 0 || size > MaxUploadSize {
		return "", "", fmt.Errorf("%w: file size must be between 1 byte and %d bytes", common.ErrorValidation, MaxUploadSize)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(ext)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		ContentType:   &contentType,
		ContentLength: &size,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

func (s *FileService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Store writes the object server-side and returns its public URL. Used for
// assistant-generated images, which never pass through the browser.
func (s *FileService) Store(ctx context.Context, contentType string, data []byte) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %q", common.ErrorValidation, contentType)
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(ext)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	}); err != nil {
		return "", err
	}

	return strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key, nil
}
