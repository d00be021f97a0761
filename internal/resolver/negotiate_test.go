package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/svanberg/assetgate/internal/testhelpers"
)

func TestNegotiate(t *testing.T) {
	testhelpers.LoadMIMETypes(t)

	root := t.TempDir()
	testhelpers.CreateFile(t, root, "app.js", "console.log(1)")
	testhelpers.CreateBrotliFile(t, root, "app.js", "console.log(1)")
	testhelpers.CreateGzipFile(t, root, "app.js", "console.log(1)")
	testhelpers.CreateFile(t, root, "style.css", "body {}")
	testhelpers.CreateGzipFile(t, root, "style.css", "body {}")
	testhelpers.CreateFile(t, root, "plain.js", "console.log(2)")
	testhelpers.CreateFile(t, root, "logo.png", "\x89PNG")
	testhelpers.CreateBrotliFile(t, root, "logo.png", "\x89PNG")

	r := New(root, "index", ".html")

	tests := []struct {
		name                string
		assetPath           string
		acceptEncoding      string
		expectedEncoding    string
		expectedPath        string
		expectedHasVariants bool
	}{
		{
			name:                "brotli_preferred",
			assetPath:           "/app.js",
			acceptEncoding:      "br, gzip",
			expectedEncoding:    "br",
			expectedPath:        "/app.js.br",
			expectedHasVariants: true,
		},
		{
			name:                "gzip_when_brotli_not_accepted",
			assetPath:           "/app.js",
			acceptEncoding:      "gzip",
			expectedEncoding:    "gzip",
			expectedPath:        "/app.js.gz",
			expectedHasVariants: true,
		},
		{
			name:                "original_when_no_acceptable_encoding",
			assetPath:           "/app.js",
			acceptEncoding:      "deflate",
			expectedEncoding:    "",
			expectedPath:        "/app.js",
			expectedHasVariants: true,
		},
		{
			name:                "gzip_only_sibling",
			assetPath:           "/style.css",
			acceptEncoding:      "br, gzip",
			expectedEncoding:    "gzip",
			expectedPath:        "/style.css.gz",
			expectedHasVariants: true,
		},
		{
			name:                "no_siblings",
			assetPath:           "/plain.js",
			acceptEncoding:      "br, gzip",
			expectedEncoding:    "",
			expectedPath:        "/plain.js",
			expectedHasVariants: false,
		},
		{
			name:                "binary_assets_never_negotiated",
			assetPath:           "/logo.png",
			acceptEncoding:      "br, gzip",
			expectedEncoding:    "",
			expectedPath:        "/logo.png",
			expectedHasVariants: true,
		},
		{
			name:                "invalid_path_serves_original",
			assetPath:           "/%zz",
			acceptEncoding:      "br",
			expectedEncoding:    "",
			expectedPath:        "/%zz",
			expectedHasVariants: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := r.Negotiate(tt.assetPath, tt.acceptEncoding)
			require.Equal(t, tt.expectedEncoding, n.Encoding)
			require.Equal(t, tt.expectedPath, n.Path)
			require.Equal(t, tt.expectedHasVariants, n.HasVariants)
		})
	}
}

func TestNegotiateContentType(t *testing.T) {
	testhelpers.LoadMIMETypes(t)

	root := t.TempDir()
	testhelpers.CreateFile(t, root, "app.js", "console.log(1)")
	testhelpers.CreateBrotliFile(t, root, "app.js", "console.log(1)")

	r := New(root, "index", ".html")

	// The outcome always carries the asset's own type, never the variant's.
	n := r.Negotiate("/app.js", "br")
	require.Equal(t, "br", n.Encoding)
	require.Equal(t, "application/javascript", n.ContentType)

	n = r.Negotiate("/unknown.someext", "br")
	require.Equal(t, "text/plain", n.ContentType)
}

func TestCompressible(t *testing.T) {
	tests := []struct {
		contentType string
		expected    bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"text/css", true},
		{"application/javascript", true},
		{"application/json", false},
		{"image/png", false},
		{"application/octet-stream", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			require.Equal(t, tt.expected, compressible(tt.contentType))
		})
	}
}
