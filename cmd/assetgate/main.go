package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	mimedb "gitlab.com/gitlab-org/go-mimedb"

	"gitlab.com/svanberg/assetgate/internal/config"
	"gitlab.com/svanberg/assetgate/internal/logging"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if cfg.General.ShowVersion {
		fmt.Printf("assetgate %s (%s)\n", VERSION, REVISION)
		return
	}

	if err := logging.ConfigureLogging(cfg.Log.Format, cfg.Log.Verbose); err != nil {
		log.WithError(err).Fatal("could not initialize logging")
	}

	if err := mimedb.LoadTypes(); err != nil {
		log.WithError(err).Warn("could not load the MIME database, falling back to the system table")
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
		"root":     cfg.General.RootDir,
	}).Info("assetgate starting")

	a := &app{config: cfg}
	if err := a.run(); err != nil {
		log.WithError(err).Fatal("assetgate failed")
	}
}
