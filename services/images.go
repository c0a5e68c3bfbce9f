package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/config"
)

// objectPutter is the part of the S3 client used for uploads
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore keeps uploaded images and returns the URL they are served from
type ImageStore interface {
	Put(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}

// S3ImageStore writes images under uploads/ in a bucket
type S3ImageStore struct {
	client  objectPutter
	bucket  string
	baseURL string
}

// NewS3ImageStore builds a store. baseURL is the public prefix objects are
// served from; when empty the bucket's virtual-hosted URL is used.
func NewS3ImageStore(client objectPutter, bucket, region, baseURL string) *S3ImageStore {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3ImageStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ImageStoreFromConfig returns nil when S3_BUCKET is not set
func ImageStoreFromConfig(ctx context.Context, c *config.Config) (ImageStore, error) {
	bucket := config.GetString(c, "S3_BUCKET", "")
	if bucket == "" {
		return nil, nil
	}
	region := config.GetString(c, "AWS_REGION", "us-east-1")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3ImageStore(s3.NewFromConfig(awsCfg), bucket, region, config.GetString(c, "S3_PUBLIC_BASE_URL", "")), nil
}

func (s *S3ImageStore) Put(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	key := "uploads/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
