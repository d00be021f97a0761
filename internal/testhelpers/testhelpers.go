// Package testhelpers creates on-disk asset fixtures for tests.
package testhelpers

import (
	"compress/gzip"
	"mime"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/require"
	mimedb "gitlab.com/gitlab-org/go-mimedb"
)

// LoadMIMETypes populates the process-wide MIME table the same way the
// daemon does at startup. Tests that assert on negotiated content types
// must call this so results do not depend on the host's /etc/mime.types.
func LoadMIMETypes(t *testing.T) {
	t.Helper()

	require.NoError(t, mimedb.LoadTypes())
	require.NoError(t, mime.AddExtensionType(".js", "application/javascript"))
}

// CreateFile writes content to name below root, creating any missing
// parent directories.
func CreateFile(t *testing.T, root, name, content string) {
	t.Helper()

	fullPath := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}

// CreateBrotliFile writes a brotli-compressed sibling of name, i.e.
// "<name>.br", containing the compressed content.
func CreateBrotliFile(t *testing.T, root, name, content string) {
	t.Helper()

	fullPath := filepath.Join(root, name+".br")
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))

	f, err := os.Create(fullPath)
	require.NoError(t, err)

	w := brotli.NewWriter(f)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

// CreateGzipFile writes a gzip-compressed sibling of name, i.e.
// "<name>.gz", containing the compressed content.
func CreateGzipFile(t *testing.T, root, name, content string) {
	t.Helper()

	fullPath := filepath.Join(root, name+".gz")
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))

	f, err := os.Create(fullPath)
	require.NoError(t, err)

	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}
