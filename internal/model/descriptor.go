package model

import (
	"time"
)

// MediaDescriptor is the authoritative record for one piece of user media.
type MediaDescriptor struct {
	ID               int64      `json:"id"`
	Owner            string     `json:"owner"`
	MediaType        MediaType  `json:"media_type"`
	MimeType         string     `json:"mime_type"`
	MediaUID         string     `json:"media_uid"`
	Version          int        `json:"version"`
	OriginalBlobName string     `json:"original_blob_name"`
	Status           Status     `json:"status"`
	ProcessingError  *string    `json:"processing_error,omitempty"`
	Variants         Variants   `json:"variants"`
	AspectRatio      *float64   `json:"aspect_ratio"`
	DominantColor    *string    `json:"dominant_color"`
	Width            *int       `json:"width"`
	Height           *int       `json:"height"`
	Duration         *int       `json:"duration"`
	PostID           *int64     `json:"post_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ReadyMetadata carries the probe results written together with variants
// when a pipeline finishes.
type ReadyMetadata struct {
	AspectRatio   *float64
	DominantColor *string
	Width         *int
	Height        *int
	Duration      *int
}
