package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
)

func validateConfig(config *Config) error {
	var result *multierror.Error

	if err := validateRootDir(config.General.RootDir); err != nil {
		result = multierror.Append(result, err)
	}

	if strings.Contains(config.General.IndexName, "/") {
		result = multierror.Append(result, errors.New("index must be a bare file name without a directory part"))
	}

	if ext := config.General.DefaultExtension; ext != "" && !strings.HasPrefix(ext, ".") {
		result = multierror.Append(result, fmt.Errorf("default-extension %q must start with a dot", ext))
	}

	if config.General.MaxConns < 0 {
		result = multierror.Append(result, errors.New("max-conns must not be negative"))
	}

	if config.RateLimit.SourceIP > 0 && config.RateLimit.SourceIPBurst < 1 {
		result = multierror.Append(result, errors.New("rate-limit-source-ip-burst must be at least 1 when rate limiting is enabled"))
	}

	return result.ErrorOrNil()
}

func validateRootDir(root string) error {
	if root == "" {
		return errors.New("root must be defined")
	}

	fi, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root %q: %w", root, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("root %q is not a directory", root)
	}

	return nil
}
