package httputil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcceptsEncoding(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		coding         string
		expected       bool
	}{
		{
			name:           "brotli_token",
			acceptEncoding: "br",
			coding:         "br",
			expected:       true,
		},
		{
			name:           "brotli_in_list",
			acceptEncoding: "gzip, deflate, br",
			coding:         "br",
			expected:       true,
		},
		{
			name:           "brotli_case_insensitive",
			acceptEncoding: "BR",
			coding:         "br",
			expected:       true,
		},
		{
			name:           "brotli_not_a_substring_match",
			acceptEncoding: "abr, xbrx",
			coding:         "br",
			expected:       false,
		},
		{
			name:           "brotli_with_quality",
			acceptEncoding: "br;q=0.8",
			coding:         "br",
			expected:       true,
		},
		{
			name:           "brotli_quality_zero_still_accepted",
			acceptEncoding: "br;q=0",
			coding:         "br",
			expected:       true,
		},
		{
			name:           "gzip_token",
			acceptEncoding: "gzip",
			coding:         "gzip",
			expected:       true,
		},
		{
			name:           "gz_alias",
			acceptEncoding: "gz",
			coding:         "gzip",
			expected:       true,
		},
		{
			name:           "gzip_missing",
			acceptEncoding: "deflate, br",
			coding:         "gzip",
			expected:       false,
		},
		{
			name:           "empty_header",
			acceptEncoding: "",
			coding:         "br",
			expected:       false,
		},
		{
			name:           "unknown_coding",
			acceptEncoding: "deflate",
			coding:         "deflate",
			expected:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, AcceptsEncoding(tt.acceptEncoding, tt.coding))
		})
	}
}
