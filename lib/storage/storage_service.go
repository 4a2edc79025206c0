package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hikelog/lib/environment"
	"hikelog/lib/tracing"
)

var ErrNoBucket = errors.New("no publish bucket configured")

// FileItem describes an object that was written to the bucket.
type FileItem struct {
	Key         string
	Size        int64
	ContentType string
	Bucket      string
}

// ObjectPutter is the slice of the S3 API publishing needs; *s3.Client satisfies it.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type StorageService struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewStorageService(ctx context.Context, env *environment.EnvironmentService) (*StorageService, error) {
	if env.GetPublishBucket() == "" {
		return nil, ErrNoBucket
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(env.GetS3Region())}
	if env.GetS3AccessKey() != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(env.GetS3AccessKey(), env.GetS3SecretKey(), ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := env.GetS3Endpoint(); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return NewStorageServiceWithClient(client, env.GetPublishBucket(), env.GetPublishPrefix()), nil
}

func NewStorageServiceWithClient(client ObjectPutter, bucket, prefix string) *StorageService {
	return &StorageService{client: client, bucket: bucket, prefix: prefix}
}

// PublishFile uploads the file at filePath under prefix/name.
func (s *StorageService) PublishFile(ctx context.Context, name, filePath, contentType string) (*FileItem, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StorageService.PublishFile")
	defer span.End()

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filePath, err)
	}

	key := path.Join(s.prefix, name)
	slog.InfoContext(ctx, "Publishing file", "bucket", s.bucket, "key", key, "size", info.Size())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("no-cache"),
	})
	if err != nil {
		return nil, fmt.Errorf("put %s: %w", key, err)
	}

	return &FileItem{
		Key:         key,
		Size:        info.Size(),
		ContentType: contentType,
		Bucket:      s.bucket,
	}, nil
}
