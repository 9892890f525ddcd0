package s3media

import (
	"errors"
	"fmt"

	"github.com/pagebound/BookCrate/internal/pkg/env"
)

// Config holds S3 media storage configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // Base URL media objects are served from
	Enabled         bool
}

// LoadConfig loads S3 configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
		Enabled:         env.GetEnv("S3_MEDIA_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when S3 media storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when S3 media storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when S3 media storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if S3 media storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// GetObjectKey generates a standardized S3 object key for a media upload.
func (c *Config) GetObjectKey(packageID uint, mediaUUID, fileExtension string) string {
	// Format: packages/<id>/media/<uuid>.<ext>
	return fmt.Sprintf("packages/%d/media/%s%s", packageID, mediaUUID, fileExtension)
}

// GetIconKey generates the object key for a package icon thumbnail.
func (c *Config) GetIconKey(packageID uint, mediaUUID string) string {
	return fmt.Sprintf("packages/%d/icon/%s.png", packageID, mediaUUID)
}

// PublicURL builds the externally served URL for an object key.
func (c *Config) PublicURL(objectKey string) string {
	if c.PublicBaseURL == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, objectKey)
	}
	return fmt.Sprintf("%s/%s", c.PublicBaseURL, objectKey)
}
