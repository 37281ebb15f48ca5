package minio

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"docgen-srv/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO mirrors generated report artifacts (stamped PDFs and their PNG
// previews) into object storage. The filesystem under reports/ stays the
// source of truth; the mirror exists for backup and external consumers.
type MinIO interface {
	Connection
	BucketManager
	ArtifactUploader
}

// Connection defines interface for MinIO connection operations.
type Connection interface {
	Connect(ctx context.Context) error
	ConnectWithRetry(ctx context.Context, maxRetries int) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// BucketManager defines operations for managing the artifact bucket.
type BucketManager interface {
	CreateBucket(ctx context.Context, bucketName string) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// ArtifactUploader defines methods for mirroring generated artifacts.
type ArtifactUploader interface {
	UploadFile(ctx context.Context, req *UploadRequest) (*FileInfo, error)
	FileExists(ctx context.Context, bucketName, objectName string) (bool, error)
}

// UploadRequest carries one artifact into the mirror.
type UploadRequest struct {
	BucketName   string
	ObjectName   string
	OriginalName string
	Reader       io.Reader
	Size         int64
	ContentType  string
	Metadata     map[string]string
}

// FileInfo describes a mirrored artifact.
type FileInfo struct {
	BucketName   string    `json:"bucket_name"`
	ObjectName   string    `json:"object_name"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	ETag         string    `json:"etag"`
	LastModified time.Time `json:"last_modified"`
}

const (
	// maxArtifactSizeBytes caps a single upload. Stamped report PDFs run
	// to a few dozen MB with many photos; 512MB is far beyond any
	// legitimate artifact.
	maxArtifactSizeBytes = 512 * 1024 * 1024

	// defaultEndpointPort is appended when the endpoint carries no port.
	defaultEndpointPort = ":9000"

	idleConnTimeout = 90 * time.Second
)

// NewMinIO creates an artifact mirror client. The connection is verified
// separately via Connect.
func NewMinIO(cfg *config.MinIOConfig) (MinIO, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
		Transport: &http.Transport{
			MaxIdleConns:    16,
			IdleConnTimeout: idleConnTimeout,
			// Artifacts are already compressed (PDF, PNG).
			DisableCompression: true,
		},
	})
	if err != nil {
		return nil, err
	}

	return &implMinIO{client: client, config: cfg}, nil
}

func validateConfig(cfg *config.MinIOConfig) error {
	if cfg.Endpoint == "" {
		return NewInvalidInputError("endpoint is required")
	}
	if cfg.AccessKey == "" {
		return NewInvalidInputError("access key is required")
	}
	if cfg.SecretKey == "" {
		return NewInvalidInputError("secret key is required")
	}
	if cfg.Bucket == "" {
		return NewInvalidInputError("bucket is required")
	}
	if !strings.Contains(cfg.Endpoint, ":") {
		cfg.Endpoint += defaultEndpointPort
	}
	return nil
}
