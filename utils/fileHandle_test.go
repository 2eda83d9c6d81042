package utils_test

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"learnhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFileHeader runs content through a real multipart round trip so
// the header's Open() works like it does for an incoming request.
func buildFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, utils.ValidateUpload(buildFileHeader(t, "notes.txt", "hello")))
	assert.NoError(t, utils.ValidateUpload(buildFileHeader(t, "photo.PNG", "img")))

	err := utils.ValidateUpload(buildFileHeader(t, "malware.exe", "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")

	oversize := buildFileHeader(t, "big.pdf", strings.Repeat("a", utils.MaxUploadSize+1))
	err = utils.ValidateUpload(oversize)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size limit")
}

func TestSaveUploadedFile(t *testing.T) {
	dir := t.TempDir()

	path, err := utils.SaveUploadedFile(buildFileHeader(t, "notes.txt", "lesson notes"), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lesson notes", string(data))

	// Stored under a generated name, original extension kept
	assert.Equal(t, ".txt", filepath.Ext(path))
	assert.NotEqual(t, "notes.txt", filepath.Base(path))

	_, err = utils.SaveUploadedFile(buildFileHeader(t, "malware.exe", "nope"), dir)
	require.Error(t, err)
}

func TestGetFileURL(t *testing.T) {
	assert.Equal(t, "/uploads/abc.png", utils.GetFileURL("/tmp/store/abc.png"))
	assert.Equal(t, "", utils.GetFileURL(""))
}
