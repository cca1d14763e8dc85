package store

import (
	"fmt"
	"os"

	"github.com/agent-rules/rules/internal/branding"
	"github.com/agent-rules/rules/internal/config"
)

// Resolve returns the store root. Sources are consulted in order: the
// --store flag value, the RULES_STORE environment variable, the "store"
// config key, and finally the current working directory.
func Resolve(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(branding.EnvVar("STORE")); env != "" {
		return env, nil
	}
	if cfg := config.Get("store"); cfg != "" {
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return cwd, nil
}
