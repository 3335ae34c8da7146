package upload

import "context"

// Result is the image host's answer for a stored image.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	UploadBytes(ctx context.Context, folder, filename string, b []byte) (*Result, error)
}
