package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validTestConfig(t *testing.T) *Config {
	t.Helper()

	return &Config{
		General: General{
			RootDir:          t.TempDir(),
			IndexName:        "index",
			DefaultExtension: ".html",
		},
		RateLimit: RateLimit{
			SourceIPBurst: 100,
		},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr string
	}{
		{
			name:   "valid_config",
			mutate: func(c *Config) {},
		},
		{
			name:        "missing_root",
			mutate:      func(c *Config) { c.General.RootDir = "" },
			expectedErr: "root must be defined",
		},
		{
			name:        "root_does_not_exist",
			mutate:      func(c *Config) { c.General.RootDir = "/does/not/exist" },
			expectedErr: "/does/not/exist",
		},
		{
			name:        "index_with_directory_part",
			mutate:      func(c *Config) { c.General.IndexName = "sub/index" },
			expectedErr: "index must be a bare file name",
		},
		{
			name:        "extension_without_dot",
			mutate:      func(c *Config) { c.General.DefaultExtension = "html" },
			expectedErr: "must start with a dot",
		},
		{
			name:        "negative_max_conns",
			mutate:      func(c *Config) { c.General.MaxConns = -1 },
			expectedErr: "max-conns must not be negative",
		},
		{
			name: "rate_limit_without_burst",
			mutate: func(c *Config) {
				c.RateLimit.SourceIP = 10
				c.RateLimit.SourceIPBurst = 0
			},
			expectedErr: "rate-limit-source-ip-burst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTestConfig(t)
			tt.mutate(config)

			err := validateConfig(config)
			if tt.expectedErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}
