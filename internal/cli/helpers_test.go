package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stubkit-labs/stubkit/internal/layout"
)

func TestReadLayoutSource(t *testing.T) {
	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "layout.yaml")
		if err := os.WriteFile(path, []byte("name: from-file\n"), 0644); err != nil {
			t.Fatal(err)
		}

		data, err := readLayoutSource(path)
		if err != nil {
			t.Fatalf("readLayoutSource() error: %v", err)
		}
		if !strings.Contains(string(data), "from-file") {
			t.Errorf("unexpected data: %q", data)
		}
	})

	t.Run("built-in name", func(t *testing.T) {
		data, err := readLayoutSource("analytics-plugin")
		if err != nil {
			t.Fatalf("readLayoutSource() error: %v", err)
		}
		if !strings.Contains(string(data), "name: analytics-plugin") {
			t.Errorf("unexpected data: %q", data)
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, err := readLayoutSource("no-such-layout")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "built-ins:") {
			t.Errorf("error should list built-ins, got: %v", err)
		}
	})
}

func TestCheckRequires(t *testing.T) {
	restore := buildVersion
	defer func() { buildVersion = restore }()

	l := &layout.Layout{Name: "pinned", Requires: ">=1.2.0"}

	t.Run("dev builds skip the check", func(t *testing.T) {
		buildVersion = "dev"
		if err := checkRequires(l); err != nil {
			t.Errorf("checkRequires() = %v, want nil", err)
		}
	})

	t.Run("satisfied constraint", func(t *testing.T) {
		buildVersion = "v1.3.0"
		if err := checkRequires(l); err != nil {
			t.Errorf("checkRequires() = %v, want nil", err)
		}
	})

	t.Run("unsatisfied constraint", func(t *testing.T) {
		buildVersion = "1.1.0"
		err := checkRequires(l)
		if err == nil {
			t.Fatal("expected error for unsatisfied constraint")
		}
		if !strings.Contains(err.Error(), ">=1.2.0") {
			t.Errorf("error should mention the constraint, got: %v", err)
		}
	})

	t.Run("no constraint", func(t *testing.T) {
		buildVersion = "0.0.1"
		if err := checkRequires(&layout.Layout{Name: "free"}); err != nil {
			t.Errorf("checkRequires() = %v, want nil", err)
		}
	})
}

func TestParsePerm(t *testing.T) {
	tests := []struct {
		in      string
		def     os.FileMode
		want    os.FileMode
		wantErr bool
	}{
		{"", 0755, 0755, false},
		{"0755", 0644, 0755, false},
		{"644", 0755, 0644, false},
		{"0600", 0644, 0600, false},
		{"abc", 0644, 0, true},
		{"999", 0644, 0, true},
	}

	for _, tt := range tests {
		got, err := parsePerm(tt.in, tt.def)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePerm(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePerm(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePerm(%q) = %o, want %o", tt.in, got, tt.want)
		}
	}
}

func TestResolveBase(t *testing.T) {
	if got := resolveBase("/explicit"); got != "/explicit" {
		t.Errorf("resolveBase(explicit) = %q", got)
	}
	if got := resolveBase(""); got != "." {
		t.Errorf("resolveBase(empty, no config) = %q, want '.'", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("firstNonEmpty = %q, want b", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}
