package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
	ProviderCustom Provider = "custom" // MinIO, R2 and friends
)

// Config holds configuration for S3-compatible storage
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint is required for wasabi/custom, e.g. "https://s3.ap-southeast-1.wasabisys.com"
	Endpoint string
}

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "https://s3.us-east-1.wasabisys.com",
	"us-east-2":      "https://s3.us-east-2.wasabisys.com",
	"us-west-1":      "https://s3.us-west-1.wasabisys.com",
	"eu-central-1":   "https://s3.eu-central-1.wasabisys.com",
	"ap-southeast-1": "https://s3.ap-southeast-1.wasabisys.com",
}

// Presigner issues short-lived URLs for a single bucket. It is built once at
// startup and shared by every request.
type Presigner struct {
	bucket string
	client *s3.PresignClient
}

// NewPresigner loads AWS config with static credentials and applies
// provider-specific endpoint settings.
func NewPresigner(ctx context.Context, cfg Config) (*Presigner, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket not configured")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newPresignerFromAWS(awsCfg, cfg), nil
}

func newPresignerFromAWS(awsCfg aws.Config, cfg Config) *Presigner {
	endpoint := cfg.Endpoint
	if endpoint == "" && cfg.Provider == ProviderWasabi {
		endpoint = WasabiEndpoints[cfg.Region]
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Presigner{
		bucket: cfg.Bucket,
		client: s3.NewPresignClient(client),
	}
}

// PresignPut returns a URL the browser can PUT the object to directly.
func (p *Presigner) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return req.URL, nil
}

// PresignGet returns a URL for reading the object. disposition is passed
// through as the response Content-Disposition ("inline" or "attachment").
func (p *Presigner) PresignGet(ctx context.Context, key string, ttl time.Duration, disposition string) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}
	if disposition != "" {
		input.ResponseContentDisposition = aws.String(disposition)
	}

	req, err := p.client.PresignGetObject(ctx, input, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return req.URL, nil
}
