// AngelaMos | 2026
// storage.go

// Package storage issues presigned uploads to an S3 compatible bucket and
// streams objects back through an access check.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/config"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Upload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ObjectInfo struct {
	ContentType string
	Size        int64
	ETag        string
}

// ObjectStore is the subset of bucket operations the API uses.
type ObjectStore interface {
	PresignUpload(ctx context.Context, fileName string) (*Upload, error)
	Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Remove(ctx context.Context, key string) error
}

type Store struct {
	client *minio.Client
	bucket string
	prefix string
	expiry time.Duration
}

func New(cfg config.StorageConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.PrivatePrefix, "/"),
		expiry: expiry,
	}, nil
}

// EnsureBucket creates the bucket on first start.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Ping reports whether the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s: %w", s.bucket, core.ErrNotFound)
	}
	return nil
}

func (s *Store) PresignUpload(ctx context.Context, fileName string) (*Upload, error) {
	key := ObjectKey(s.prefix, uuid.New().String(), fileName)

	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &Upload{
		UploadURL: u.String(),
		ObjectKey: key,
		ExpiresAt: time.Now().Add(s.expiry).UTC(),
	}, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, translate("open object", err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close() //nolint:errcheck // object never opened
		return nil, ObjectInfo{}, translate("stat object", err)
	}

	return obj, ObjectInfo{
		ContentType: stat.ContentType,
		Size:        stat.Size,
		ETag:        stat.ETag,
	}, nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return translate("remove object", err)
	}
	return nil
}

func translate(op string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey builds prefix/id/name with the file name reduced to a safe
// character set.
func ObjectKey(prefix, id, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	if len(name) > 120 {
		name = name[len(name)-120:]
	}

	if prefix == "" {
		return id + "/" + name
	}
	return prefix + "/" + id + "/" + name
}

// ValidKey rejects keys that could escape the bucket layout.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
