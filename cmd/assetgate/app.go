package main

import (
	"net"
	"net/http"
	"sync"

	proxyproto "github.com/pires/go-proxyproto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/netutil"

	"gitlab.com/svanberg/assetgate/internal/config"
	"gitlab.com/svanberg/assetgate/internal/httperrors"
	"gitlab.com/svanberg/assetgate/internal/logging"
	"gitlab.com/svanberg/assetgate/internal/ratelimit"
	"gitlab.com/svanberg/assetgate/internal/resolver"
	"gitlab.com/svanberg/assetgate/internal/sendfile"
	"gitlab.com/svanberg/assetgate/internal/static"
	"gitlab.com/svanberg/assetgate/metrics"
)

const defaultListenHTTP = "127.0.0.1:8080"

var corsHandler = cors.New(cors.Options{AllowedMethods: []string{http.MethodGet, http.MethodHead}})

type app struct {
	config *config.Config
}

// buildHandler assembles the middleware chain around the static file
// middleware: access logging and CORS on the outside, rate limiting before
// any filesystem work, and a plain 404 page standing in for the downstream
// application.
func (a *app) buildHandler() (http.Handler, error) {
	general := a.config.General

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httperrors.Serve404(w)
	})

	res := resolver.New(general.RootDir, general.IndexName, general.DefaultExtension)
	responder := sendfile.New(general.RootDir, a.config.Headers, metrics.ServingFileSize)
	handler = static.NewMiddleware(handler, res, responder)

	if a.config.RateLimit.SourceIP > 0 {
		limiter := ratelimit.New(a.config.RateLimit.SourceIP, a.config.RateLimit.SourceIPBurst)
		handler = limiter.Middleware(handler)
	}

	if !general.DisableCrossOriginRequests {
		handler = corsHandler.Handler(handler)
	}

	return logging.AccessLogger(handler, a.config.Log.Format)
}

func (a *app) listenAndServe(addr string, handler http.Handler) error {
	server := &http.Server{Handler: handler}

	if a.config.General.HTTP2 {
		if err := http2.ConfigureServer(server, &http2.Server{}); err != nil {
			return err
		}
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	if a.config.General.MaxConns > 0 {
		l = netutil.LimitListener(l, a.config.General.MaxConns)
	}

	if a.config.General.ProxyProtocol {
		l = &proxyproto.Listener{Listener: l}
	}

	return server.Serve(l)
}

func (a *app) run() error {
	handler, err := a.buildHandler()
	if err != nil {
		return err
	}

	addrs := a.config.Listeners.HTTP.Split()
	if len(addrs) == 0 {
		addrs = []string{defaultListenHTTP}
	}

	var wg sync.WaitGroup

	for _, addr := range addrs {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()

			log.WithField("listener", addr).Info("listening for HTTP requests")
			if err := a.listenAndServe(addr, handler); err != nil {
				log.WithError(err).Fatal("listener failed")
			}
		}(addr)
	}

	if a.config.General.MetricsAddress != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()

			log.WithField("listener", a.config.General.MetricsAddress).Info("listening for metrics requests")

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(a.config.General.MetricsAddress, mux); err != nil {
				log.WithError(err).Fatal("metrics listener failed")
			}
		}()
	}

	wg.Wait()

	return nil
}
