package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/cache"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

const noSuchKey = "NoSuchKey"

// ObjectCache keeps one object per key under a prefix of the cache bucket.
// Entry age is the object's LastModified.
type ObjectCache struct {
	client *MinIOClient
	logger logging.Logger
	prefix string
	now    func() time.Time
}

func NewObjectCache(client *MinIOClient, prefix string, log logging.Logger) *ObjectCache {
	return &ObjectCache{
		client: client,
		logger: log,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

var _ cache.Cache = (*ObjectCache)(nil)

func (c *ObjectCache) Name() string { return "minio" }

func (c *ObjectCache) objectKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return path.Join(c.prefix, key)
}

func (c *ObjectCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	obj, err := c.client.GetClient().GetObject(ctx, c.client.Bucket(), c.objectKey(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, c.readError(err, key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, c.readError(err, key)
	}
	return data, nil
}

// readError maps a missing object to a cache miss.  The SDK defers the
// NoSuchKey response until the first read.
func (c *ObjectCache) readError(err error, key string) error {
	if minio.ToErrorResponse(err).Code == noSuchKey {
		return cache.ErrCacheMiss
	}
	return errors.Wrap(err, errors.ErrCodeCacheError, "failed to read cache object").WithDetail(key)
}

func (c *ObjectCache) Put(ctx context.Context, key string, data []byte) error {
	if c.client.isClosed() {
		return ErrMinIOClientClosed
	}
	_, err := c.client.GetClient().PutObject(ctx, c.client.Bucket(), c.objectKey(key),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: contentType(key)})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to write cache object").WithDetail(key)
	}
	return nil
}

func (c *ObjectCache) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	if c.client.isClosed() {
		return 0, ErrMinIOClientClosed
	}
	cutoff := c.now().Add(-maxAge)
	opts := minio.ListObjectsOptions{Recursive: true}
	if c.prefix != "" {
		opts.Prefix = c.prefix + "/"
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	removed := 0
	for obj := range c.client.GetClient().ListObjects(ctx, c.client.Bucket(), opts) {
		if obj.Err != nil {
			return removed, errors.Wrap(obj.Err, errors.ErrCodeCacheError, "failed to list cache objects")
		}
		if !obj.LastModified.Before(cutoff) {
			continue
		}
		if err := c.client.GetClient().RemoveObject(ctx, c.client.Bucket(), obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, errors.Wrap(err, errors.ErrCodeCacheError, "failed to remove cache object").WithDetail(obj.Key)
		}
		removed++
	}
	if removed > 0 {
		c.logger.Debug("object cache swept", logging.Int("removed", removed), logging.String("bucket", c.client.Bucket()))
	}
	return removed, nil
}

func contentType(key string) string {
	switch path.Ext(key) {
	case ".json":
		return "application/json"
	case ".zip":
		return "application/zip"
	}
	return "application/octet-stream"
}

//Personal.AI order the ending
