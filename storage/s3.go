package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Signer issues presigned GET URLs for private objects. Audio files,
// learning reports and certificates are never served directly; every
// download goes through a time-boxed link from here.
type S3Signer struct {
	presigner *s3.PresignClient
	bucket    string
}

func NewS3Signer(ctx context.Context, region, bucket string) (*S3Signer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Signer{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}, nil
}

// PresignGet returns a GET URL valid for ttl.
func (s *S3Signer) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
