package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/userhub/internal/server/config"
	"github.com/google/uuid"
)

// seams for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client     objectPutter
	bucket     string
	publicBase string
	newKey     func() string
}

var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader builds an uploader from the media settings in cfg. A custom
// S3BaseEndpoint (MinIO, localstack) switches the client to path-style
// addressing.
func NewS3Uploader(ctx context.Context, cfg *config.Config) (*S3Uploader, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3RootUser, cfg.S3RootPassword, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client:     client,
		bucket:     cfg.S3Bucket,
		publicBase: publicBaseURL(cfg),
		newKey:     uuid.NewString,
	}, nil
}

func publicBaseURL(cfg *config.Config) string {
	switch {
	case cfg.S3PublicBaseURL != "":
		return strings.TrimRight(cfg.S3PublicBaseURL, "/")
	case cfg.S3BaseEndpoint != "":
		return strings.TrimRight(cfg.S3BaseEndpoint, "/")
	default:
		return fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.S3Region)
	}
}

func (u *S3Uploader) Upload(ctx context.Context, data []byte, contentType, folder string) (*Result, error) {
	key := u.newKey()
	if folder != "" {
		key = strings.Trim(folder, "/") + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return &Result{Err: fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())}, nil
		}
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &Result{SecureURL: u.publicBase + "/" + u.bucket + "/" + key}, nil
}
