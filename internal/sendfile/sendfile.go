// Package sendfile performs the low-level transfer of a resolved asset: it
// opens a single file below a root directory and writes it to the response,
// delegating conditional requests and byte ranges to net/http.
package sendfile

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sys/unix"

	"gitlab.com/svanberg/assetgate/internal/httperrors"
	"gitlab.com/svanberg/assetgate/internal/logging"
)

// Responder serves files below a fixed root directory. Custom headers are
// merged into every response before the body is written.
type Responder struct {
	root           string
	headers        http.Header
	fileSizeMetric prometheus.Histogram
}

// New returns a Responder rooted at root. headers may be nil.
func New(root string, headers http.Header, fileSizeMetric prometheus.Histogram) *Responder {
	return &Responder{
		root:           strings.TrimSuffix(root, "/"),
		headers:        headers,
		fileSizeMetric: fileSizeMetric,
	}
}

// Serve writes the file named by r.URL.Path to w. The path must already be
// resolved and safe: Serve only guards against the file changing between
// resolution and open (symlink swap, deletion, mode change), in which case
// it responds 404 itself. Conditional request headers (If-Modified-Since,
// If-None-Match) and Range requests are honored via http.ServeContent,
// which also sets Content-Length and Content-Type.
func (re *Responder) Serve(w http.ResponseWriter, r *http.Request) {
	fullPath := filepath.Join(re.root, filepath.FromSlash(r.URL.Path))

	file, err := openNoFollow(fullPath)
	if err != nil {
		logging.LogRequest(r).WithError(err).Error("could not open resolved file")
		httperrors.Serve404(w)
		return
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		httperrors.Serve404(w)
		return
	}

	for k, values := range re.headers {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}

	re.fileSizeMetric.Observe(float64(fi.Size()))

	http.ServeContent(w, r, fullPath, fi.ModTime(), file)
}

func openNoFollow(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY|unix.O_NOFOLLOW, 0)
}
