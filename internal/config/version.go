package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// supportedRange is the set of config schema versions this binary reads.
const supportedRange = ">= 1.0.0, < 2.0.0"

// CheckVersion returns an error when version is unparseable or outside the
// range this binary understands. An empty version is treated as 1.0.0, which
// is what hand-written configs without the field mean.
func CheckVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing config version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(supportedRange)
	if err != nil {
		return fmt.Errorf("parsing supported range: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("config version %s is not supported (want %s)", v, supportedRange)
	}
	return nil
}
