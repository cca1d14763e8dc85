package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidateVersion checks that a manifest version string is parseable semver.
// A leading "v" is tolerated and stripped before parsing.
func ValidateVersion(version string) error {
	if _, err := semver.NewVersion(strings.TrimPrefix(version, "v")); err != nil {
		return fmt.Errorf("version %q is not valid semver: %w", version, err)
	}
	return nil
}
