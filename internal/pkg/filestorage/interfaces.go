package filestorage

import (
	"io"
	"mime/multipart"
)

// BlobStore abstracts the document blob backend so local disk can be
// swapped for object storage without touching attachment logic.
type BlobStore interface {
	// Save writes an uploaded file and returns the storage key it was saved under
	Save(fileHeader *multipart.FileHeader) (string, error)

	// Open returns a reader over the stored blob
	Open(key string) (io.ReadCloser, error)

	// Delete removes a stored blob. Deleting a missing blob is not an error.
	Delete(key string) error

	// Exists reports whether the blob is present
	Exists(key string) bool

	// Path returns the filesystem path for a storage key, when applicable
	Path(key string) string
}
