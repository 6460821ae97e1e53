package repository

import (
	"context"
	"io"
)

// ImageStore holds uploaded profile images.
type ImageStore interface {
	UploadProfileImage(ctx context.Context, uid string, r io.Reader, contentType string) (string, error)
	// DeleteProfileImages removes every object of uid; none existing is fine.
	DeleteProfileImages(ctx context.Context, uid string) (int, error)
}
