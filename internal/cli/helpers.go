package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/stubkit-labs/stubkit/internal/branding"
	"github.com/stubkit-labs/stubkit/internal/layout"
	"github.com/stubkit-labs/stubkit/internal/layouts"
)

// readLayoutSource resolves a layout reference to raw YAML bytes. A reference
// is "-" for stdin, a path to a readable file, or the name of a built-in.
func readLayoutSource(ref string) ([]byte, error) {
	if ref == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading layout from stdin: %w", err)
		}
		return data, nil
	}

	if _, err := os.Stat(ref); err == nil {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("reading layout %s: %w", ref, err)
		}
		return data, nil
	}

	if layouts.Has(ref) {
		return layouts.Raw(ref)
	}

	return nil, fmt.Errorf("layout %q is neither a readable file nor a built-in (built-ins: %s)",
		ref, strings.Join(layouts.Names(), ", "))
}

// checkRequires enforces a layout's 'requires' semver constraint against the
// running build. Development builds skip the check.
func checkRequires(l *layout.Layout) error {
	if l.Requires == "" || buildVersion == "dev" {
		return nil
	}

	c, err := semver.NewConstraint(l.Requires)
	if err != nil {
		return fmt.Errorf("layout %s: invalid 'requires' constraint %q: %w", l.Name, l.Requires, err)
	}

	v, err := semver.NewVersion(strings.TrimPrefix(buildVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing build version %q: %w", buildVersion, err)
	}

	if !c.Check(v) {
		return fmt.Errorf("layout %s requires %s %s, but this is %s",
			l.Name, branding.CLIName(), l.Requires, buildVersion)
	}
	return nil
}

// parsePerm parses an octal permission string such as "0755" or "644".
// An empty string yields the default.
func parsePerm(s string, def os.FileMode) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}

	u, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid permission %q: %w", s, err)
	}
	return os.FileMode(u), nil
}
