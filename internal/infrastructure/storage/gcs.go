package storage

import (
	"context"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"

	"github.com/devtrail/bootcamp-api/pkg/apperr"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
)

// GCSStore keeps uploaded photos in a Google Cloud Storage bucket,
// used instead of DiskStore when a bucket is configured.
type GCSStore struct {
	Client *gcs.Client
	Bucket string
	Prefix string
}

func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket, Prefix: "uploads"}
}

func (s *GCSStore) Save(ctx context.Context, filename, contentType string, r io.Reader) error {
	object := path.Join(s.Prefix, path.Base(filename))
	if _, err := helpers.UploadObject(ctx, s.Client, s.Bucket, object, contentType, r); err != nil {
		return apperr.Wrap(apperr.Upstream, err, "problem with file upload")
	}
	return nil
}
