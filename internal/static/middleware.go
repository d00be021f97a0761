// Package static serves files from a fixed root directory in front of an
// application handler. Requests the root cannot satisfy fall through to the
// next handler untouched.
package static

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitlab.com/svanberg/assetgate/internal/resolver"
	"gitlab.com/svanberg/assetgate/internal/sendfile"
	"gitlab.com/svanberg/assetgate/metrics"
)

type middleware struct {
	next      http.Handler
	resolver  *resolver.Resolver
	responder *sendfile.Responder
}

// NewMiddleware returns a handler that serves static files resolved by res
// and read by responder, delegating everything else to next.
func NewMiddleware(next http.Handler, res *resolver.Resolver, responder *sendfile.Responder) http.Handler {
	return &middleware{
		next:      next,
		resolver:  res,
		responder: responder,
	}
}

func (s *middleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.next.ServeHTTP(w, r)
		return
	}

	// A single trailing slash is stripped before resolution so "/dir/"
	// matches the same index file as "/dir".
	requestPath := strings.TrimSuffix(r.URL.EscapedPath(), "/")

	safePath, ok := s.resolver.Match(requestPath)
	if !ok {
		metrics.RequestsTotal.WithLabelValues("fallthrough").Inc()
		s.next.ServeHTTP(w, r)
		return
	}

	start := time.Now()
	defer func() {
		metrics.ServingTime.Observe(time.Since(start).Seconds())
	}()

	origPath, origRawPath := r.URL.Path, r.URL.RawPath
	defer func() {
		r.URL.Path, r.URL.RawPath = origPath, origRawPath
	}()

	setRequestPath(r, safePath)

	// Negotiation is evaluated against the path as the client sent it, not
	// the index- or extension-expanded form: precompressed siblings are
	// expected to live next to the asset the client literally asked for.
	n := s.resolver.Negotiate(requestPath, r.Header.Get("Accept-Encoding"))

	if n.HasVariants {
		w.Header().Set("Vary", "Accept-Encoding")
	}

	if n.Encoding != "" {
		setRequestPath(r, n.Path)
		w = &encodedWriter{
			ResponseWriter: w,
			encoding:       n.Encoding,
			contentType:    n.ContentType,
		}
	}

	metrics.RequestsTotal.WithLabelValues(outcomeLabel(n.Encoding)).Inc()

	s.responder.Serve(w, r)
}

// setRequestPath points the request at an escaped, resolver-provided path.
// Path carries the decoded form and RawPath the escaped one, mirroring how
// net/url itself populates the two fields.
func setRequestPath(r *http.Request, escaped string) {
	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		decoded = escaped
	}

	r.URL.Path = decoded
	if decoded == escaped {
		r.URL.RawPath = ""
	} else {
		r.URL.RawPath = escaped
	}
}

func outcomeLabel(encoding string) string {
	if encoding == "" {
		return "identity"
	}
	return encoding
}

// encodedWriter patches Content-Encoding and Content-Type once the
// delegated file transfer commits a status code. The content type is the
// original asset's, not the compressed sibling's. Not-modified responses
// pass through untouched so conditional requests keep their verbatim 304.
type encodedWriter struct {
	http.ResponseWriter
	encoding    string
	contentType string
	wroteHeader bool
}

func (w *encodedWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	if status != http.StatusNotModified {
		w.Header().Set("Content-Encoding", w.encoding)
		w.Header().Set("Content-Type", w.contentType)
	}

	w.ResponseWriter.WriteHeader(status)
}

func (w *encodedWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(b)
}
