// Package config holds the daemon configuration, assembled from command
// line flags, environment variables or a config file via namsral/flag.
package config

import (
	"net/http"
)

// Config stores all the config options relevant to the assetgate daemon.
type Config struct {
	General   General
	Listeners Listeners
	Log       Log
	RateLimit RateLimit

	// Headers is the parsed form of General.CustomHeaders, merged into
	// every served-file response.
	Headers http.Header
}

// General groups settings that can not be categorized under other heads.
type General struct {
	RootDir          string
	IndexName        string
	DefaultExtension string
	MaxConns         int
	MetricsAddress   string
	HTTP2            bool
	ProxyProtocol    bool

	DisableCrossOriginRequests bool

	ShowVersion bool

	CustomHeaders []string
}

// Listeners groups the addresses the daemon accepts requests on.
type Listeners struct {
	HTTP MultiStringFlag
}

// Log groups settings related to configuring logging.
type Log struct {
	Format  string
	Verbose bool
}

// RateLimit groups settings for the per-source-IP request limiter. A zero
// SourceIP rate disables limiting.
type RateLimit struct {
	SourceIP      float64
	SourceIPBurst int
}

// LoadConfig parses flags into a validated Config.
func LoadConfig() (*Config, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	return config, nil
}
