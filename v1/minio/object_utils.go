package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"

	"github.com/minio/minio-go/v7"
)

const (
	contentTypePDF = "application/pdf"
	unknownSize    = -1
)

// DocumentKey is the object key of the source document for an owning ID.
func DocumentKey(prefix string, owningID int64) string {
	return path.Join(prefix, strconv.FormatInt(owningID, 10)+".pdf")
}

// Put uploads an object to the bucket. A size of 0 or less streams with an
// unknown length.
func (m *Minio) Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (int64, error) {
	if size <= 0 {
		size = unknownSize
	}
	info, err := m.Client.PutObject(ctx, m.cfg.BucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to put object %s: %w", objectKey, err)
	}
	return info.Size, nil
}

// Get reads a whole object.
func (m *Minio) Get(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := m.Client.GetObject(ctx, m.cfg.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer func() {
		if err := obj.Close(); err != nil {
			m.logger.Error("failed to close object reader", err, map[string]interface{}{"key": objectKey})
		}
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object data: %w", err)
	}
	return data, nil
}

// Delete removes an object. Removing a missing object is not an error.
func (m *Minio) Delete(ctx context.Context, objectKey string) error {
	return m.Client.RemoveObject(ctx, m.cfg.BucketName, objectKey, minio.RemoveObjectOptions{})
}

// ArchiveDocument stores the source PDF of owningID, replacing any earlier upload.
func (m *Minio) ArchiveDocument(ctx context.Context, owningID int64, reader io.Reader, size int64) (string, error) {
	key := DocumentKey(m.cfg.Prefix, owningID)
	if _, err := m.Put(ctx, key, reader, size, contentTypePDF); err != nil {
		return "", err
	}
	m.logger.Info("archived document", nil, map[string]interface{}{
		"owning_id": owningID,
		"key":       key,
	})
	return key, nil
}
