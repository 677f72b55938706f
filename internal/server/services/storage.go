// Package services contains server-side business logic: the card mutation
// engine, the label lifecycle, user profile updates, and the binary storage
// provider they depend on.
package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	sc "github.com/quanle-dev/taskboard/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// UploadResult describes a stored binary object. SecureURL is what card
// covers and attachments persist; PublicID is the provider-side handle kept
// for later cleanup.
type UploadResult struct {
	AssetID          string
	OriginalFilename string
	Format           *string
	SecureURL        string
	Bytes            int64
	PublicID         *string
}

// StorageProvider is the binary storage collaborator consumed by the card
// service. A failed upload must abort the dependent card mutation.
type StorageProvider interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (*UploadResult, error)
}

// S3Provider stores uploads in an S3-compatible backend (MinIO in dev).
type S3Provider struct {
	config *sc.Config
}

func NewS3Provider(config *sc.Config) *S3Provider {
	return &S3Provider{config: config}
}

// storageKey builds a date-partitioned object key inside folder.
func storageKey(folder string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%v", folder, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (p *S3Provider) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(p.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.S3RootUser,     // MINIO_ROOT_USER
			p.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

func (p *S3Provider) Upload(ctx context.Context, data []byte, filename, folder string) (*UploadResult, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	bucket := p.config.S3Bucket
	key := storageKey(folder)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}

	result := &UploadResult{
		AssetID:          key,
		OriginalFilename: filename,
		SecureURL:        strings.TrimSuffix(p.config.S3BaseEndpoint, "/") + "/" + bucket + "/" + key,
		Bytes:            int64(len(data)),
		PublicID:         &key,
	}
	if ext := strings.TrimPrefix(path.Ext(filename), "."); ext != "" {
		format := strings.ToLower(ext)
		result.Format = &format
	}

	return result, nil
}
