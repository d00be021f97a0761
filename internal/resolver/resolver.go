// Package resolver decides whether an untrusted request path maps to a
// servable file below a fixed root directory.
package resolver

import (
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

var errIllegalPath = errors.New("resolver: illegal character in path")

// Resolver matches request paths against files on disk. All checks are
// relative to the root directory fixed at construction; a matched path can
// never reference anything above it.
type Resolver struct {
	root       string
	index      string
	defaultExt string
}

// New returns a Resolver rooted at root. index is the base name of the
// directory index file and defaultExt the extension appended when matching
// extensionless requests, e.g. New("public", "index", ".html").
func New(root, index, defaultExt string) *Resolver {
	return &Resolver{
		root:       strings.TrimSuffix(root, "/"),
		index:      index,
		defaultExt: defaultExt,
	}
}

// Root returns the directory all matches are resolved against.
func (r *Resolver) Root() string {
	return r.root
}

// Match resolves rawPath, as received on the request line, to a servable
// file below the root. It tries the decoded and cleaned path itself, then
// the path with the default extension appended, then the directory index
// inside it, returning the first readable regular file as an escaped path
// relative to the root. ok is false when nothing matches; a path that fails
// to decode or contains illegal characters never matches.
func (r *Resolver) Match(rawPath string) (safePath string, ok bool) {
	cleaned, err := cleanPath(rawPath)
	if err != nil {
		return "", false
	}

	candidates := []string{
		cleaned,
		cleaned + r.defaultExt,
		path.Join(cleaned, r.index+r.defaultExt),
	}

	for _, candidate := range candidates {
		if r.readable(candidate) {
			return escapePath(candidate), true
		}
	}

	return "", false
}

// readable reports whether name references a readable regular file below
// the root. Any filesystem error counts as not readable.
func (r *Resolver) readable(name string) bool {
	fullPath := filepath.Join(r.root, filepath.FromSlash(name))

	fi, err := os.Lstat(fullPath)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}

	return unix.Access(fullPath, unix.R_OK) == nil
}

// cleanPath percent-decodes and normalizes a request path. The result is
// always rooted at "/", so ".." segments collapse instead of climbing above
// the root.
func cleanPath(rawPath string) (string, error) {
	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		return "", err
	}

	if strings.ContainsAny(decoded, "\x00\\") {
		return "", errIllegalPath
	}

	return path.Clean("/" + decoded), nil
}

func escapePath(cleaned string) string {
	u := url.URL{Path: cleaned}
	return u.EscapedPath()
}
