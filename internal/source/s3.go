package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/arloliu/agx/errs"
)

const s3Scheme = "s3://"

// ObjectGetter is the part of the S3 client used to stream fixtures.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ParseS3URL splits s3://bucket/key into bucket and key.
func ParseS3URL(location string) (string, string, error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not an s3 url", errs.ErrInvalidLocation, location)
	}

	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs s3://bucket/key", errs.ErrInvalidLocation, location)
	}

	return bucket, key, nil
}

// newS3Client creates a client from the default AWS configuration.
func newS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func openS3(ctx context.Context, cfg *Config, location string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URL(location)
	if err != nil {
		return nil, err
	}

	getter := cfg.s3
	if getter == nil {
		client, err := newS3Client(ctx, cfg.s3Region, cfg.s3Endpoint)
		if err != nil {
			return nil, err
		}
		getter = client
	}

	resp, err := getter.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get object s3://%s/%s: %w", errs.ErrIO, bucket, key, err)
	}

	return resp.Body, nil
}
