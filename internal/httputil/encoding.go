// Package httputil contains helpers for inspecting HTTP request headers.
package httputil

import (
	"regexp"
)

// Content codings are matched as whole tokens inside the Accept-Encoding
// value. Quality values are not parsed, so "br;q=0" still counts as an
// acceptable coding.
var acceptedCoding = map[string]*regexp.Regexp{
	"br":   regexp.MustCompile(`(?i)\bbr\b`),
	"gzip": regexp.MustCompile(`(?i)\b(?:gzip|gz)\b`),
}

// AcceptsEncoding reports whether the given Accept-Encoding header value
// declares the content coding as acceptable. Only "br" and "gzip" are
// recognized codings; anything else reports false.
func AcceptsEncoding(acceptEncoding, coding string) bool {
	re, ok := acceptedCoding[coding]
	if !ok {
		return false
	}

	return re.MatchString(acceptEncoding)
}
