package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/logger"
)

// MaxUploadSize is the largest accepted document upload (10 MiB)
const MaxUploadSize = 10 << 20

// allowedMimeTypes is the document upload allow-list: PDF, JPEG, PNG,
// legacy and OOXML Word/Excel.
var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ValidateUpload enforces the type allow-list and size cap. It must be
// called before any persistent write happens.
func ValidateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxUploadSize {
		return apperrors.ErrFileTooLarge
	}
	if !allowedMimeTypes[ContentType(fileHeader)] {
		return apperrors.ErrFileTypeNotAllowed
	}
	return nil
}

// ContentType resolves the MIME type of an upload from its part header
func ContentType(fileHeader *multipart.FileHeader) string {
	ct := fileHeader.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

// LocalStorage stores blobs on the local filesystem under a single directory.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath,
// creating the directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// Save writes an uploaded file under a collision-resistant key:
// a nanosecond timestamp prefix plus the sanitized original name.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	if err := ValidateUpload(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("%d-%s", time.Now().UnixNano(), SanitizeFilename(fileHeader.Filename))
	dstPath := filepath.Join(ls.basePath, key)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, io.LimitReader(file, MaxUploadSize+1)); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("key", key).
		Int64("size", fileHeader.Size).
		Msg("File saved")
	return key, nil
}

// Open returns a reader over a stored blob
func (ls *LocalStorage) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(ls.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// Delete removes a blob from storage. A missing blob is tolerated so that
// metadata cleanup can proceed even when the file is already gone.
func (ls *LocalStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	physicalPath := ls.Path(key)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Exists reports whether the blob is present on disk
func (ls *LocalStorage) Exists(key string) bool {
	if key == "" {
		return false
	}
	_, err := os.Stat(ls.Path(key))
	return err == nil
}

// Path returns the full filesystem path for a storage key. Keys are reduced
// to their base name so a crafted key cannot escape the storage directory.
func (ls *LocalStorage) Path(key string) string {
	return filepath.Join(ls.basePath, filepath.Base(key))
}

// SanitizeFilename strips path components and unsafe characters from an
// uploaded filename
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
