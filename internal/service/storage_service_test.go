package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageProvider_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	p := NewLocalStorageProvider(dir)

	url, err := p.Upload(context.Background(), "materials/doc.pdf", strings.NewReader("content"), 7, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/materials/doc.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "materials", "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, p.Delete(context.Background(), "materials/doc.pdf"))
	_, err = os.Stat(filepath.Join(dir, "materials", "doc.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageProvider_DeleteMissingIsNoop(t *testing.T) {
	p := NewLocalStorageProvider(t.TempDir())
	assert.NoError(t, p.Delete(context.Background(), "materials/never-uploaded.pdf"))
}
