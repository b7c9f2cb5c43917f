// Package archive copies CSV exports into an S3 compatible bucket.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	KeyPrefix      = "exports"
	CSVContentType = "text/csv; charset=utf-8"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.Bucket) != "" &&
		c.AccessKey != "" &&
		c.SecretKey != ""
}

// ObjectPutter is the part of *minio.Client the archiver needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Archiver struct {
	putter ObjectPutter
	bucket string
	logger *log.Logger
	now    func() time.Time
}

// NewMinioArchiver connects to the bucket and creates it when missing.
func NewMinioArchiver(ctx context.Context, cfg Config, logger *log.Logger) (*Archiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return NewArchiver(client, cfg.Bucket, logger), nil
}

func NewArchiver(putter ObjectPutter, bucket string, logger *log.Logger) *Archiver {
	return &Archiver{
		putter: putter,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// Disabled returns an archiver that stores nothing.
func Disabled() *Archiver {
	return &Archiver{now: time.Now}
}

func (a *Archiver) Enabled() bool {
	return a != nil && a.putter != nil
}

// ObjectKey is exports/<UTC date>/<filename>.
func (a *Archiver) ObjectKey(filename string) string {
	return path.Join(KeyPrefix, a.now().UTC().Format(time.DateOnly), path.Base(filename))
}

// Store uploads data and returns the object key. Failures are logged and
// reported as an empty key; they never reach the caller.
func (a *Archiver) Store(ctx context.Context, filename string, data []byte) string {
	if !a.Enabled() {
		return ""
	}

	logger := log.GetLoggerInstanceFromContext(ctx, a.logger)
	key := a.ObjectKey(filename)

	_, err := a.putter.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: CSVContentType,
	})
	if err != nil {
		logger.Error("Failed to archive export", "bucket", a.bucket, "key", key, "error", err)
		return ""
	}

	logger.Info("Archived export", "bucket", a.bucket, "key", key, "size", humanize.Bytes(uint64(len(data))))
	return key
}
