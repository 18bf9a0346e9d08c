package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "report")

// Sink receives a finished report and returns where it ended up.
type Sink interface {
	Publish(ctx context.Context, name string, data []byte) (string, error)
}

// DirSink writes reports into a local directory.
type DirSink struct {
	Dir string
}

func (d DirSink) Publish(_ context.Context, name string, data []byte) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	p := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	log.WithField("path", p).Info("report written")
	return p, nil
}

// ObjectPutter is the slice of the S3 client the sink needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads reports to a bucket.
type S3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewS3Sink(client ObjectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// S3Config holds the bucket settings. Empty keys fall back to the default
// AWS credential chain.
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3SinkFromConfig builds an S3 client from cfg.
func NewS3SinkFromConfig(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("report s3 sink: bucket is not configured")
	}
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

func (s *S3Sink) Publish(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Base(name)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}
	loc := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	log.WithField("location", loc).Info("report uploaded")
	return loc, nil
}
