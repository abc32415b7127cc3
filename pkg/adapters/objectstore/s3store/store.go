package s3store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

// Options configures the S3 client.
type Options struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint targets an S3-compatible service (MinIO, R2) using path-style addressing.
	Endpoint string
	// PublicURL is the prefix of every object URL handed to clients.
	PublicURL string
}

// API is the subset of *s3.Client the store calls.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Store struct {
	client    API
	bucket    string
	publicURL string
	log       logrus.FieldLogger
}

// NewClient builds an S3 client from static credentials. Empty credentials
// fall back to the default AWS provider chain.
func NewClient(ctx context.Context, opts Options) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// New wraps client for the configured bucket.
func New(client API, opts Options, logger logrus.FieldLogger) *Store {
	publicURL := opts.PublicURL
	if publicURL != "" && !strings.HasSuffix(publicURL, "/") {
		publicURL += "/"
	}
	return &Store{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: publicURL,
		log:       logger.WithFields(logrus.Fields{"component": "objectstore", "bucket": opts.Bucket}),
	}
}

func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	s.log.WithFields(logrus.Fields{"key": key, "size": size}).Info("Object uploaded")
	return s.URLFor(key), nil
}

func (s *Store) Get(ctx context.Context, key string) (*ports.Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	return &ports.Object{
		Body:          out.Body,
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: aws.ToInt64(out.ContentLength),
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	s.log.WithField("key", key).Info("Object deleted")
	return nil
}

// URLFor returns the public URL of key.
func (s *Store) URLFor(key string) string {
	return s.publicURL + url.PathEscape(key)
}

// KeyFromURL strips the bucket URL prefix from a stored file URL.
func (s *Store) KeyFromURL(fileURL string) (string, bool) {
	if s.publicURL == "" || !strings.HasPrefix(fileURL, s.publicURL) {
		return "", false
	}
	key := strings.TrimPrefix(fileURL, s.publicURL)
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	return key, key != ""
}

var _ ports.ObjectStore = (*Store)(nil)
