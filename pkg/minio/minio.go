package minio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"docgen-srv/config"

	"github.com/minio/minio-go/v7"
)

type implMinIO struct {
	client    *minio.Client
	config    *config.MinIOConfig
	mu        sync.RWMutex
	connected bool
}

// Connect verifies the endpoint is reachable with the configured
// credentials. ListBuckets is the cheapest authenticated round trip.
func (m *implMinIO) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.client.ListBuckets(ctx); err != nil {
		m.connected = false
		return handleMinIOError(err, "connect")
	}
	m.connected = true
	return nil
}

// ConnectWithRetry retries Connect with exponential backoff. Used at
// startup when the mirror and the service come up together.
func (m *implMinIO) ConnectWithRetry(ctx context.Context, maxRetries int) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := m.Connect(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(1<<uint(attempt)) * time.Second):
		}
	}
	return fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, lastErr)
}

func (m *implMinIO) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected {
		return NewConnectionError(fmt.Errorf("not connected"))
	}
	if _, err := m.client.ListBuckets(ctx); err != nil {
		return handleMinIOError(err, "health_check")
	}
	return nil
}

func (m *implMinIO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

// CreateBucket creates the artifact bucket. Creating an existing bucket
// is an error; callers check BucketExists first.
func (m *implMinIO) CreateBucket(ctx context.Context, bucketName string) error {
	if err := validateBucketName(bucketName); err != nil {
		return err
	}

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return handleMinIOError(err, "bucket_exists")
	}
	if exists {
		return NewInvalidInputError(fmt.Sprintf("bucket already exists: %s", bucketName))
	}

	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.config.Region}); err != nil {
		return handleMinIOError(err, "create_bucket")
	}
	return nil
}

func (m *implMinIO) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if err := validateBucketName(bucketName); err != nil {
		return false, err
	}

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, handleMinIOError(err, "bucket_exists")
	}
	return exists, nil
}

// UploadFile mirrors one artifact. The document's human-readable filename
// travels in object metadata; the object name itself is the mirror path
// (reports/<name>.pdf, previews/<name>.png).
func (m *implMinIO) UploadFile(ctx context.Context, req *UploadRequest) (*FileInfo, error) {
	if err := validateUploadRequest(req); err != nil {
		return nil, err
	}

	opts := minio.PutObjectOptions{
		ContentType:  req.ContentType,
		UserMetadata: req.Metadata,
	}
	if opts.UserMetadata == nil {
		opts.UserMetadata = make(map[string]string)
	}
	if req.OriginalName != "" {
		opts.UserMetadata["original-name"] = req.OriginalName
	}

	info, err := m.client.PutObject(ctx, req.BucketName, req.ObjectName, req.Reader, req.Size, opts)
	if err != nil {
		return nil, handleMinIOError(err, "upload_file")
	}

	return &FileInfo{
		BucketName:   req.BucketName,
		ObjectName:   req.ObjectName,
		OriginalName: req.OriginalName,
		Size:         info.Size,
		ContentType:  req.ContentType,
		ETag:         info.ETag,
		LastModified: time.Now(),
	}, nil
}

func (m *implMinIO) FileExists(ctx context.Context, bucketName, objectName string) (bool, error) {
	if err := validateBucketName(bucketName); err != nil {
		return false, err
	}
	if objectName == "" {
		return false, NewInvalidInputError("object name is required")
	}

	if _, err := m.client.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{}); err != nil {
		storageErr := handleMinIOError(err, "file_exists")
		if storageErr.Code == ErrCodeObjectNotFound {
			return false, nil
		}
		return false, storageErr
	}
	return true, nil
}

func validateUploadRequest(req *UploadRequest) error {
	switch {
	case req.BucketName == "":
		return NewInvalidInputError("bucket name is required")
	case req.ObjectName == "":
		return NewInvalidInputError("object name is required")
	case strings.HasPrefix(req.ObjectName, "/") || strings.HasSuffix(req.ObjectName, "/"):
		return NewInvalidInputError("object name cannot start or end with '/'")
	case req.Reader == nil:
		return NewInvalidInputError("reader is required")
	case req.Size <= 0:
		return NewInvalidInputError("size must be positive")
	case req.Size > maxArtifactSizeBytes:
		return NewInvalidInputError("artifact exceeds the upload size cap")
	case req.ContentType == "":
		return NewInvalidInputError("content type is required")
	}
	return nil
}

func validateBucketName(bucketName string) error {
	if len(bucketName) < 3 || len(bucketName) > 63 {
		return NewInvalidInputError("bucket name must be 3-63 characters")
	}
	for _, char := range bucketName {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '-') {
			return NewInvalidInputError("bucket name can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if strings.HasPrefix(bucketName, "-") || strings.HasSuffix(bucketName, "-") {
		return NewInvalidInputError("bucket name cannot start or end with hyphen")
	}
	return nil
}

func handleMinIOError(err error, operation string) *StorageError {
	if err == nil {
		return nil
	}
	if minioErr, ok := err.(minio.ErrorResponse); ok {
		switch minioErr.Code {
		case "NoSuchBucket":
			return NewBucketNotFoundError(minioErr.BucketName)
		case "NoSuchKey":
			return NewObjectNotFoundError(minioErr.Key)
		case "AccessDenied":
			return &StorageError{Code: ErrCodePermission, Message: "access denied", Operation: operation, Cause: err}
		default:
			return &StorageError{Code: ErrCodeConnection, Message: fmt.Sprintf("storage operation failed: %s", minioErr.Code), Operation: operation, Cause: err}
		}
	}
	return NewConnectionError(err)
}
