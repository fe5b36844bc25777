// Package media implements the upload flow for avatar and post images:
// collision-resistant key generation, blob upload, and public-URL
// resolution. The uploader never writes to a table; persisting the URL
// into the owning row is the caller's job.
package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/client/backend"
	"github.com/skilllink/skilllink/internal/common"
	"github.com/skilllink/skilllink/internal/logging"
)

// File is one user-selected binary file.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader uploads files into one bucket of the storage surface.
type Uploader struct {
	storage backend.StorageAPI
	bucket  string
	log     logging.Logger
	now     func() time.Time
}

func NewUploader(storage backend.StorageAPI, bucket string, log logging.Logger) *Uploader {
	return &Uploader{storage: storage, bucket: bucket, log: log, now: time.Now}
}

// storageKey renders "uploads/{unix-nanos}_{uuid}{ext}". The wall-clock
// component keeps keys browsable in time order; the uuid makes collisions
// between concurrent uploads, same client or not, negligible.
func (u *Uploader) storageKey(name string) string {
	ext := strings.ToLower(path.Ext(name))
	return fmt.Sprintf("uploads/%d_%s%s", u.now().UnixNano(), uuid.New(), ext)
}

// Upload validates the file, uploads it under a fresh key, and returns the
// publicly fetchable URL. A missing file fails with a ValidationError
// before any network call. Backend failures surface unchanged; there is no
// partial-retry or resume.
func (u *Uploader) Upload(ctx context.Context, file File) (string, error) {
	if len(file.Data) == 0 {
		return "", &common.ValidationError{Field: "file", Message: "you must select an image to upload"}
	}

	key := u.storageKey(file.Name)
	opts := backend.UploadOptions{ContentType: file.ContentType}

	if err := u.storage.Upload(ctx, u.bucket, key, bytes.NewReader(file.Data), opts); err != nil {
		return "", err
	}

	url := u.storage.PublicURL(u.bucket, key)
	u.log.Debug(ctx, "file uploaded", "bucket", u.bucket, "key", key)
	return url, nil
}

// UploadAndNotify is Upload with a completion callback, matching the shape
// form components expect: onDone receives the public URL only on success.
func (u *Uploader) UploadAndNotify(ctx context.Context, file File, onDone func(url string)) error {
	url, err := u.Upload(ctx, file)
	if err != nil {
		return err
	}
	if onDone != nil {
		onDone(url)
	}
	return nil
}
