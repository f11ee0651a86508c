package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/portfolio/internal/flagx"
)

const legacyBaseURLVar = "VITE_API_BASE_URL"

// lookupEnviron is the process environment; tests replace it.
var lookupEnviron = os.Environ

// loadEnviron merges the dotenv file (given by -env, or ./.env when present)
// under the process environment. Real variables win over the file, the same
// as godotenv.Load.
func loadEnviron(args []string) (map[string]string, error) {
	result := map[string]string{}

	path := flagx.EnvFileFlag(args)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	values, err := godotenv.Read(path)
	switch {
	case err == nil:
		for k, v := range values {
			result[k] = v
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("load env file %s: %w", path, err)
	}

	for _, kv := range lookupEnviron() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			result[k] = v
		}
	}
	return result, nil
}

// parseEnv overlays cfg with PORTFOLIO_* variables. VITE_API_BASE_URL is
// honoured as a fallback for the base URL so an existing frontend .env can
// be reused as-is.
func parseEnv(cfg *Config, environ map[string]string) error {
	if v := environ[legacyBaseURLVar]; v != "" {
		cfg.APIBaseURL = v
	}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
