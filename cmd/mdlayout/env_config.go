package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdlayout/internal/config"
)

// envPrefix marks the variables read by the command.
const envPrefix = "MDLAYOUT_"

// envConfig holds overrides from environment variables, for CI use
// without a config file.
type envConfig struct {
	ConfigPath string        // MDLAYOUT_CONFIG
	Backend    string        // MDLAYOUT_BACKEND
	PageSize   string        // MDLAYOUT_PAGE_SIZE
	Theme      string        // MDLAYOUT_THEME
	Assets     string        // MDLAYOUT_ASSETS
	Timeout    time.Duration // MDLAYOUT_TIMEOUT
	Workers    int           // MDLAYOUT_WORKERS
}

// knownEnvVars lists the recognized variables, to warn about typos.
var knownEnvVars = map[string]bool{
	"MDLAYOUT_CONFIG":    true,
	"MDLAYOUT_BACKEND":   true,
	"MDLAYOUT_PAGE_SIZE": true,
	"MDLAYOUT_THEME":     true,
	"MDLAYOUT_ASSETS":    true,
	"MDLAYOUT_TIMEOUT":   true,
	"MDLAYOUT_WORKERS":   true,
	"MDLAYOUT_DEBUG":     true,
}

// loadEnvConfig reads the MDLAYOUT_* variables. Malformed numbers and
// durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDLAYOUT_CONFIG"),
		Backend:    getenv("MDLAYOUT_BACKEND"),
		PageSize:   getenv("MDLAYOUT_PAGE_SIZE"),
		Theme:      getenv("MDLAYOUT_THEME"),
		Assets:     getenv("MDLAYOUT_ASSETS"),
	}
	if v := getenv("MDLAYOUT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := getenv("MDLAYOUT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	return cfg
}

// warnUnknownEnvVars reports MDLAYOUT_* variables that are not recognized.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides the config file with environment values.
// Precedence: flags > environment > config file > defaults. Flags are
// applied afterwards by mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Backend != "" {
		cfg.Backend.Name = env.Backend
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Theme != "" {
		cfg.Highlight.Theme = env.Theme
	}
	if env.Assets != "" {
		cfg.Assets.BasePath = env.Assets
	}
	if env.Timeout > 0 {
		cfg.Backend.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}

// environ is replaced in tests.
var environ = os.Environ
