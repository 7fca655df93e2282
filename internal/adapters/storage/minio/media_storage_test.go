package minio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMediaStorageValidation(t *testing.T) {
	_, err := NewMediaStorage(Config{AccessKey: "k", SecretKey: "s"})
	assert.Error(t, err)

	_, err = NewMediaStorage(Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}

func TestUploadFileRemovesStagedFileOnFailure(t *testing.T) {
	// Endpoint nothing listens on: the upload fails, the staged file must
	// still be removed.
	storage, err := NewMediaStorage(Config{
		Endpoint:  "127.0.0.1:1",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	staged := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(staged, []byte("not-really-a-png"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = storage.UploadFile(ctx, staged)
	assert.Error(t, err)

	_, statErr := os.Stat(staged)
	assert.True(t, os.IsNotExist(statErr), "staged file should be removed after a failed upload")
}

func TestUploadFileMissingLocalFile(t *testing.T) {
	storage, err := NewMediaStorage(Config{
		Endpoint:  "127.0.0.1:1",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	_, err = storage.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
