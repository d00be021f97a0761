package resolver

import (
	"mime"
	"path"
	"strings"

	"gitlab.com/svanberg/assetgate/internal/httputil"
)

const (
	brotliExt = ".br"
	gzipExt   = ".gz"

	defaultContentType = "text/plain"
)

// Negotiation is the outcome of encoding negotiation for a matched asset.
// An empty Encoding means the original file should be served. HasVariants
// is true when a compressed sibling exists on disk, regardless of whether
// one was chosen.
type Negotiation struct {
	Encoding    string
	Path        string
	ContentType string
	HasVariants bool
}

// Negotiate picks which variant of assetPath to serve given the request's
// Accept-Encoding value. Variants are looked up as literal ".br" and ".gz"
// siblings of the asset, brotli is preferred over gzip, and the original is
// kept when the client accepts neither or the content type is not
// compressible. Every outcome carries the original asset's content type so
// the variant's own extension never leaks into the response.
func (r *Resolver) Negotiate(assetPath, acceptEncoding string) Negotiation {
	n := Negotiation{Path: assetPath, ContentType: defaultContentType}

	cleaned, err := cleanPath(assetPath)
	if err != nil {
		return n
	}

	n.Path = escapePath(cleaned)
	n.ContentType = ContentType(cleaned)

	brotli := r.readable(cleaned + brotliExt)
	gzip := r.readable(cleaned + gzipExt)
	n.HasVariants = brotli || gzip

	if !compressible(n.ContentType) {
		return n
	}

	switch {
	case brotli && httputil.AcceptsEncoding(acceptEncoding, "br"):
		n.Encoding = "br"
		n.Path = escapePath(cleaned + brotliExt)
	case gzip && httputil.AcceptsEncoding(acceptEncoding, "gzip"):
		n.Encoding = "gzip"
		n.Path = escapePath(cleaned + gzipExt)
	}

	return n
}

// ContentType returns the MIME type of assetPath based on its extension,
// falling back to text/plain for unknown extensions.
func ContentType(assetPath string) string {
	if contentType := mime.TypeByExtension(path.Ext(assetPath)); contentType != "" {
		return contentType
	}

	return defaultContentType
}

// compressible reports whether assets of the given content type are worth
// serving precompressed. Binary assets are never negotiated even when
// compressed siblings exist.
func compressible(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/javascript"
}
