// Package storage abstracts the blob store that holds course cover images.
package storage

import (
	"context"
	"errors"
	"mime/multipart"
)

// Sentinel errors for uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Uploader stores an uploaded file durably and returns a public URL for it.
// Implementations must honor ctx cancellation; the course service calls
// Upload under a bounded deadline.
type Uploader interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}
