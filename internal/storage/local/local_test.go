package local_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/port"
	"gstbill/internal/storage/local"
)

func TestLocalStorage_StoreAndPresign(t *testing.T) {
	dir := t.TempDir()
	storage, err := local.NewLocalStorage(dir)
	require.NoError(t, err)

	content := []byte("%PDF-1.7 test")
	out, err := storage.Store(context.Background(), port.StoreInput{
		Key:         "invoices/Invoice_GII_2025_042.pdf",
		Body:        bytes.NewReader(content),
		ContentType: "application/pdf",
		Size:        int64(len(content)),
	})
	require.NoError(t, err)

	written, err := os.ReadFile(out.Location)
	require.NoError(t, err)
	assert.Equal(t, content, written)

	path, err := storage.PresignedURL(context.Background(), "invoices/Invoice_GII_2025_042.pdf", 3600)
	require.NoError(t, err)
	assert.Equal(t, out.Location, path)
}

func TestLocalStorage_PresignMissingObject(t *testing.T) {
	storage, err := local.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.PresignedURL(context.Background(), "invoices/nope.pdf", 3600)
	require.Error(t, err)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	storage, err := local.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside.pdf", "/etc/passwd", "."} {
		_, err := storage.Store(context.Background(), port.StoreInput{
			Key:  key,
			Body: bytes.NewReader([]byte("x")),
		})
		assert.Error(t, err, "key %q should be rejected", key)
	}
}
