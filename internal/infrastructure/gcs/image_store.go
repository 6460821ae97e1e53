package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ImageRoot is the object prefix of all profile images.
const ImageRoot = "profileImages"

// NewClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// ImageStore keeps profile images as profileImages/<uid>_<random><ext>.
// Older uploads may sit at profileImages/<uid>; deletion covers both.
type ImageStore struct {
	Client *storage.Client
	Bucket string
}

func NewImageStore(client *storage.Client, bucket string) *ImageStore {
	return &ImageStore{Client: client, Bucket: bucket}
}

// ObjectName builds the object path for a new upload.
func ObjectName(uid, contentType string) string {
	ext := ""
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("%s/%s_%s%s", ImageRoot, uid, uuid.NewString(), ext)
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

func (s *ImageStore) UploadProfileImage(ctx context.Context, uid string, r io.Reader, contentType string) (string, error) {
	objectPath := ObjectName(uid, contentType)
	wc := s.Client.Bucket(s.Bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(s.Bucket, objectPath), nil
}

// DeleteProfileImages removes profileImages/<uid> and profileImages/<uid>_*.
// Objects that are already gone are not errors.
func (s *ImageStore) DeleteProfileImages(ctx context.Context, uid string) (int, error) {
	bucket := s.Client.Bucket(s.Bucket)
	exact := ImageRoot + "/" + uid

	var names []string
	it := bucket.Objects(ctx, &storage.Query{Prefix: exact})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("list images of %s: %w", uid, err)
		}
		if OwnsObject(uid, attrs.Name) {
			names = append(names, attrs.Name)
		}
	}

	var errs []error
	deleted := 0
	for _, name := range names {
		err := bucket.Object(name).Delete(ctx)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, storage.ErrObjectNotExist):
		default:
			errs = append(errs, fmt.Errorf("delete %s: %w", name, err))
		}
	}
	return deleted, errors.Join(errs...)
}

// OwnsObject reports whether name is one of uid's image objects. A prefix
// match alone is not enough: uid "u1" must not claim "u10_x.png".
func OwnsObject(uid, name string) bool {
	exact := ImageRoot + "/" + uid
	return name == exact || strings.HasPrefix(name, exact+"_")
}
