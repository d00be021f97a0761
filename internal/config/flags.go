package config

import (
	"github.com/namsral/flag"
)

var (
	rootDir          = flag.String("root", "public", "The directory to serve static assets from")
	indexName        = flag.String("index", "index", "The base name of the directory index file")
	defaultExtension = flag.String("default-extension", ".html", "The extension appended when matching extensionless request paths")

	listenHTTP     = MultiStringFlag{}
	metricsAddress = flag.String("metrics-address", "", "The address to listen on for metrics requests")
	maxConns       = flag.Int("max-conns", 0, "Limit on the number of concurrent connections to the HTTP listeners, 0 for no limit")
	useHTTP2       = flag.Bool("use-http2", true, "Enable HTTP2 support")
	proxyProtocol  = flag.Bool("proxy-protocol", false, "Expect the PROXY protocol v2 header on accepted connections")

	rateLimitSourceIP      = flag.Float64("rate-limit-source-ip", 0.0, "Rate limit HTTP requests per second from a single IP, 0 means is disabled")
	rateLimitSourceIPBurst = flag.Int("rate-limit-source-ip-burst", 100, "Rate limit HTTP requests from a single IP, maximum burst allowed per second")

	disableCrossOriginRequests = flag.Bool("disable-cross-origin-requests", false, "Disable cross-origin requests")

	logFormat  = flag.String("log-format", "json", "The log output format: 'text' or 'json'")
	logVerbose = flag.Bool("log-verbose", false, "Verbose logging")

	showVersion = flag.Bool("version", false, "Show version")

	header = MultiStringFlag{}
)

func init() {
	flag.Var(&listenHTTP, "listen-http", "The address(es) to listen on for HTTP requests")
	flag.Var(&header, "header", "The additional http header(s) that should be sent with every served file")
}

func loadConfig() (*Config, error) {
	flag.Parse()

	config := &Config{
		General: General{
			RootDir:          *rootDir,
			IndexName:        *indexName,
			DefaultExtension: *defaultExtension,
			MaxConns:         *maxConns,
			MetricsAddress:   *metricsAddress,
			HTTP2:            *useHTTP2,
			ProxyProtocol:    *proxyProtocol,

			DisableCrossOriginRequests: *disableCrossOriginRequests,

			ShowVersion: *showVersion,

			CustomHeaders: header,
		},
		Listeners: Listeners{
			HTTP: listenHTTP,
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
		},
		RateLimit: RateLimit{
			SourceIP:      *rateLimitSourceIP,
			SourceIPBurst: *rateLimitSourceIPBurst,
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	headers, err := ParseHeaderString(config.General.CustomHeaders)
	if err != nil {
		return nil, err
	}
	config.Headers = headers

	return config, nil
}
