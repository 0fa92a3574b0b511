package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["document"]
	require.Len(t, files, 1)
	return files[0]
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	content := []byte("%PDF-1.4 test content")
	fh := makeFileHeader(t, "transcript.pdf", "application/pdf", content)

	key, err := storage.Save(fh)
	require.NoError(t, err)
	assert.True(t, storage.Exists(key))

	reader, err := storage.Open(key)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSaveRejectsDisallowedType(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	fh := makeFileHeader(t, "malware.exe", "application/x-msdownload", []byte("MZ"))

	_, err = storage.Save(fh)
	assert.ErrorIs(t, err, apperrors.ErrFileTypeNotAllowed)
	assert.Empty(t, dirEntries(t, dir), "rejected upload must not write a file")
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	fh := makeFileHeader(t, "huge.pdf", "application/pdf", bytes.Repeat([]byte("a"), MaxUploadSize+1))

	_, err = storage.Save(fh)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.Empty(t, dirEntries(t, dir), "rejected upload must not write a file")
}

func TestDeleteToleratesMissingFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, storage.Delete("never-existed.pdf"))
}

func TestOpenMissingFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Open("nope.pdf")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestPathRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	path := storage.Path("../../etc/passwd")
	assert.Equal(t, dir+string(os.PathSeparator)+"passwd", path)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report_card.pdf", SanitizeFilename("report card.pdf"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "upload", SanitizeFilename(""))
}

func TestContentTypeStripsParameters(t *testing.T) {
	fh := makeFileHeader(t, "a.pdf", "application/pdf; charset=binary", []byte("x"))
	assert.Equal(t, "application/pdf", ContentType(fh))
}
