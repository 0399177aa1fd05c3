package cloudinary

import (
	"fmt"
	"time"
)

const (
	ResourceTypeImage = "image"
	ResourceTypeVideo = "video"
)

// Resource is one entry of a resource listing.
type Resource struct {
	PublicID     string
	ResourceType string
	Type         string
	Format       string
	Version      int
	URL          string
	SecureURL    string
	Width        int
	Height       int
	Bytes        int
	CreatedAt    time.Time
	Tags         []string
}

// ResourceDetails is the full metadata of a single resource.
type ResourceDetails struct {
	Resource

	ImageMetadata map[string]string
	Exif          map[string]string
}

type ResourceOptions struct {
	ImageMetadata bool
	Exif          bool
}

// APIError is returned when the Admin API answers with an error body.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cloudinary api error: %s", e.Message)
}
