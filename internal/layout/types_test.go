package layout

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr string // empty means valid
	}{
		{
			name:   "minimal valid",
			layout: Layout{Name: "ok"},
		},
		{
			name: "valid nested and flat",
			layout: Layout{
				Name: "ok",
				Tree: []Node{
					{Dir: "src", Children: []Node{{File: "index.ts"}}},
					{File: "package.json"},
				},
				Files: []string{"docs/README.md"},
			},
		},
		{
			name:    "missing name",
			layout:  Layout{},
			wantErr: "missing required 'name'",
		},
		{
			name: "node with both dir and file",
			layout: Layout{
				Name: "bad",
				Tree: []Node{{Dir: "x", File: "y"}},
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "node with neither dir nor file",
			layout: Layout{
				Name: "bad",
				Tree: []Node{{Content: "orphan"}},
			},
			wantErr: "one of 'dir' or 'file'",
		},
		{
			name: "directory with content",
			layout: Layout{
				Name: "bad",
				Tree: []Node{{Dir: "x", Content: "nope"}},
			},
			wantErr: "cannot declare content",
		},
		{
			name: "file with children",
			layout: Layout{
				Name: "bad",
				Tree: []Node{{File: "x", Children: []Node{{File: "y"}}}},
			},
			wantErr: "cannot declare children",
		},
		{
			name: "duplicate siblings",
			layout: Layout{
				Name: "bad",
				Tree: []Node{{File: "a"}, {Dir: "a"}},
			},
			wantErr: "duplicate sibling",
		},
		{
			name: "duplicate nested siblings",
			layout: Layout{
				Name: "bad",
				Tree: []Node{{Dir: "d", Children: []Node{{File: "a"}, {File: "a"}}}},
			},
			wantErr: "duplicate sibling",
		},
		{
			name: "name with separator",
			layout: Layout{
				Name: "bad",
				Tree: []Node{{File: "sub/file.txt"}},
			},
			wantErr: "path separators",
		},
		{
			name: "dot-dot entry name",
			layout: Layout{
				Name: "bad",
				Tree: []Node{{Dir: ".."}},
			},
			wantErr: "invalid entry name",
		},
		{
			name: "flat path escaping base",
			layout: Layout{
				Name:  "bad",
				Files: []string{"../outside.txt"},
			},
			wantErr: "escapes the base",
		},
		{
			name: "absolute flat path",
			layout: Layout{
				Name:  "bad",
				Files: []string{"/etc/passwd"},
			},
			wantErr: "absolute path",
		},
		{
			name: "absolute base",
			layout: Layout{
				Name: "bad",
				Base: "/srv/app",
			},
			wantErr: "absolute path",
		},
		{
			name: "invalid requires constraint",
			layout: Layout{
				Name:     "bad",
				Requires: "not-a-constraint",
			},
			wantErr: "requires",
		},
		{
			name: "valid requires constraint",
			layout: Layout{
				Name:     "ok",
				Requires: ">=0.1.0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNodeAccessors(t *testing.T) {
	d := Node{Dir: "config"}
	if !d.IsDir() || d.EntryName() != "config" {
		t.Errorf("dir node accessors: IsDir=%v EntryName=%q", d.IsDir(), d.EntryName())
	}

	f := Node{File: "index.js"}
	if f.IsDir() || f.EntryName() != "index.js" {
		t.Errorf("file node accessors: IsDir=%v EntryName=%q", f.IsDir(), f.EntryName())
	}
}
