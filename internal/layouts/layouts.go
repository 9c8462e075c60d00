package layouts

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/stubkit-labs/stubkit/internal/layout"
)

//go:embed layouts/*.yaml
var layoutFS embed.FS

const layoutsDir = "layouts"

// Names returns the names of all built-in layouts, sorted.
func Names() []string {
	entries, err := layoutFS.ReadDir(layoutsDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Has reports whether a built-in layout with the given name exists.
func Has(name string) bool {
	_, err := layoutFS.ReadFile(layoutsDir + "/" + name + ".yaml")
	return err == nil
}

// Raw returns the raw YAML bytes of a built-in layout.
func Raw(name string) ([]byte, error) {
	data, err := layoutFS.ReadFile(layoutsDir + "/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("built-in layout %q not found", name)
	}
	return data, nil
}

// Load parses and validates a built-in layout.
func Load(name string) (*layout.Layout, error) {
	data, err := Raw(name)
	if err != nil {
		return nil, err
	}

	l, err := layout.Load(data)
	if err != nil {
		return nil, fmt.Errorf("built-in layout %q: %w", name, err)
	}
	return l, nil
}
