package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gestorapp/gestor/internal/common"
	"github.com/gestorapp/gestor/internal/server/config"
)

func newFileService() *FileService {
	return NewFileService(&config.Config{
		S3Region:        "us-east-1",
		S3RootUser:      "admin",
		S3RootPassword:  "secretpassword",
		S3BaseEndpoint:  "http://127.0.0.1:9000",
		S3Bucket:        "gestor",
		S3PublicBaseURL: "http://127.0.0.1:9000/gestor/",
	})
}

func stubS3(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	origPutObj := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
		putObject = origPutObj
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestGetPresignedPutUrl(t *testing.T) {
	stubS3(t)
	svc := newFileService()

	var gotInput *s3.PutObjectInput
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotInput = in
		return &v4.PresignedHTTPRequest{URL: "http://signed.example/" + *in.Key}, nil
	}

	key, url, err := svc.GetPresignedPutUrl(context.Background(), "image/png", 1024)
	if err != nil {
		t.Fatalf("GetPresignedPutUrl error: %v", err)
	}
	if !strings.HasPrefix(key, "users/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("unexpected key: %q", key)
	}
	if url != "http://signed.example/"+key {
		t.Errorf("unexpected url: %q", url)
	}
	if *gotInput.Bucket != "gestor" || *gotInput.ContentType != "image/png" || *gotInput.ContentLength != 1024 {
		t.Errorf("unexpected put input: %+v", gotInput)
	}
}

func TestGetPresignedPutUrl_Validation(t *testing.T) {
	svc := newFileService()
	ctx := context.Background()

	if _, _, err := svc.GetPresignedPutUrl(ctx, "application/pdf", 1024); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("content type: got %v", err)
	}
	if _, _, err := svc.GetPresignedPutUrl(ctx, "image/png", 0); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("zero size: got %v", err)
	}
	if _, _, err := svc.GetPresignedPutUrl(ctx, "image/png", MaxUploadSize+1); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("oversize: got %v", err)
	}
}

func TestGetPresignedGetUrl(t *testing.T) {
	stubS3(t)
	svc := newFileService()

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://signed.example/" + *in.Key}, nil
	}

	url, err := svc.GetPresignedGetUrl(context.Background(), "users/2025/1/2/abc.png")
	if err != nil {
		t.Fatalf("GetPresignedGetUrl error: %v", err)
	}
	if url != "http://signed.example/users/2025/1/2/abc.png" {
		t.Errorf("unexpected url: %q", url)
	}
}

func TestStore(t *testing.T) {
	stubS3(t)
	svc := newFileService()

	var gotBody []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		var err error
		gotBody, err = io.ReadAll(in.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		return &s3.PutObjectOutput{}, nil
	}

	url, err := svc.Store(context.Background(), "image/webp", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if !strings.HasPrefix(url, "http://127.0.0.1:9000/gestor/users/") || !strings.HasSuffix(url, ".webp") {
		t.Errorf("unexpected public url: %q", url)
	}
	if len(gotBody) != 3 {
		t.Errorf("body not uploaded: %v", gotBody)
	}

	if _, err := svc.Store(context.Background(), "text/plain", nil); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("content type: got %v", err)
	}
}
