package layout

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Layout describes a directory/file tree to materialize under a base path.
type Layout struct {
	Name        string   `yaml:"name" json:"name"`
	Version     string   `yaml:"version,omitempty" json:"version,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Requires    string   `yaml:"requires,omitempty" json:"requires,omitempty"`
	Base        string   `yaml:"base,omitempty" json:"base,omitempty"`
	Tree        []Node   `yaml:"tree,omitempty" json:"tree,omitempty"`
	Files       []string `yaml:"files,omitempty" json:"files,omitempty"`
}

// Node is one entry in a layout tree. Exactly one of Dir or File is set:
// dir nodes may carry children, file nodes may carry fixed content
// (empty by default).
type Node struct {
	Dir      string `yaml:"dir,omitempty" json:"dir,omitempty"`
	File     string `yaml:"file,omitempty" json:"file,omitempty"`
	Content  string `yaml:"content,omitempty" json:"content,omitempty"`
	Children []Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// IsDir reports whether the node declares a directory.
func (n *Node) IsDir() bool { return n.Dir != "" }

// EntryName returns the declared name of the node, whichever variant is set.
func (n *Node) EntryName() string {
	if n.Dir != "" {
		return n.Dir
	}
	return n.File
}

// Validate performs semantic checks that the JSON Schema cannot express,
// such as sibling name uniqueness and path confinement for flat entries.
func (l *Layout) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("layout missing required 'name' field")
	}

	if l.Requires != "" {
		if _, err := semver.NewConstraint(l.Requires); err != nil {
			return fmt.Errorf("layout %s: invalid 'requires' constraint %q: %w", l.Name, l.Requires, err)
		}
	}

	if l.Base != "" {
		if err := validateRelPath(l.Base); err != nil {
			return fmt.Errorf("layout %s: invalid base: %w", l.Name, err)
		}
	}

	if err := validateNodes(l.Tree, ""); err != nil {
		return fmt.Errorf("layout %s: %w", l.Name, err)
	}

	for _, p := range l.Files {
		if err := validateRelPath(p); err != nil {
			return fmt.Errorf("layout %s: invalid file path: %w", l.Name, err)
		}
	}

	return nil
}

// validateNodes checks one sibling group: every node must be exactly one of
// dir/file, carry a safe single-segment name, and no two siblings may share
// a name. Recurses into directory children.
func validateNodes(nodes []Node, at string) error {
	seen := make(map[string]bool, len(nodes))
	for i := range nodes {
		n := &nodes[i]

		if n.Dir != "" && n.File != "" {
			return fmt.Errorf("node %s: 'dir' and 'file' are mutually exclusive", describe(at, n.Dir))
		}
		if n.Dir == "" && n.File == "" {
			return fmt.Errorf("node at %q: one of 'dir' or 'file' is required", orDot(at))
		}
		if n.Dir != "" && n.Content != "" {
			return fmt.Errorf("node %s: directories cannot declare content", describe(at, n.Dir))
		}
		if n.File != "" && len(n.Children) > 0 {
			return fmt.Errorf("node %s: files cannot declare children", describe(at, n.File))
		}

		name := n.EntryName()
		if err := validateName(name); err != nil {
			return err
		}
		if seen[name] {
			return fmt.Errorf("duplicate sibling entry %s", describe(at, name))
		}
		seen[name] = true

		if n.IsDir() {
			if err := validateNodes(n.Children, joinAt(at, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateName ensures a name is a single safe path segment.
func validateName(name string) error {
	if name == "." || name == ".." {
		return fmt.Errorf("invalid entry name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("entry name %q must not contain path separators", name)
	}
	return nil
}

// validateRelPath ensures a flat path stays relative and confined: no
// absolute paths and no traversal above the base.
func validateRelPath(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	if filepath.IsAbs(p) || strings.HasPrefix(filepath.ToSlash(p), "/") {
		return fmt.Errorf("absolute path %q not allowed", p)
	}
	clean := filepath.ToSlash(filepath.Clean(p))
	if clean == ".." || strings.HasPrefix(clean, "../") || clean == "." {
		return fmt.Errorf("path %q escapes the base directory", p)
	}
	return nil
}

func describe(at, name string) string {
	if at == "" {
		return fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("%q under %q", name, at)
}

func joinAt(at, name string) string {
	if at == "" {
		return name
	}
	return at + "/" + name
}

func orDot(at string) string {
	if at == "" {
		return "."
	}
	return at
}
