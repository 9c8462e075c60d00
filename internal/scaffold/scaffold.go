package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/stubkit-labs/stubkit/internal/globs"
	"github.com/stubkit-labs/stubkit/internal/layout"
)

// Operation names recorded in Failure entries.
const (
	OpMkdir = "mkdir"
	OpWrite = "write"
)

// Options controls how a Scaffolder materializes layouts.
type Options struct {
	DirPerm  os.FileMode // permissions for created directories (default 0755)
	FilePerm os.FileMode // permissions for created files (default 0644)
	DryRun   bool        // print operations without touching the filesystem
	Verbose  bool        // print a line for every created entry
	Out      io.Writer   // progress and diagnostic output (default: discard)

	Skip *globs.Pattern // entries matching are skipped (directories prune their subtree)
	Only *globs.Pattern // when set, only matching files are created
	Exec *globs.Pattern // matching files are created with mode 0755
}

// Scaffolder materializes layouts under a base path. Each call is a single
// synchronous pass with no retained state between invocations.
type Scaffolder struct {
	opts Options
}

// New creates a Scaffolder, applying option defaults.
func New(opts Options) *Scaffolder {
	if opts.DirPerm == 0 {
		opts.DirPerm = 0755
	}
	if opts.FilePerm == 0 {
		opts.FilePerm = 0644
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Skip == nil {
		opts.Skip = globs.Parse("")
	}
	if opts.Only == nil {
		opts.Only = globs.Parse("")
	}
	if opts.Exec == nil {
		opts.Exec = globs.Parse("")
	}
	return &Scaffolder{opts: opts}
}

// Failure records one directory or file that could not be created.
type Failure struct {
	Path string
	Op   string // OpMkdir or OpWrite
	Err  error
}

// Result holds the outcome of a materialization pass.
type Result struct {
	Base     string
	Dirs     []string // ensured directories, in traversal order
	Files    []string // created files, in traversal order
	Skipped  []string // relative paths excluded by --skip/--only
	Failures []Failure

	dirSeen map[string]bool
}

// OK reports whether the pass completed without any failure.
func (r *Result) OK() bool { return len(r.Failures) == 0 }

// Summary returns the one-line aggregate reported after a pass.
func (r *Result) Summary() string {
	if r.OK() {
		return fmt.Sprintf("Created %d directories and %d files under %s", len(r.Dirs), len(r.Files), r.Base)
	}
	return fmt.Sprintf("%d of %d entries failed under %s",
		len(r.Failures), len(r.Dirs)+len(r.Files)+len(r.Failures), r.Base)
}

// Materialize walks the layout and creates every declared directory and file
// under base. A malformed layout is the only fatal error; per-entry filesystem
// failures are recorded in the Result and do not abort siblings or children.
func (s *Scaffolder) Materialize(l *layout.Layout, base string) (*Result, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	root := base
	if l.Base != "" {
		root = filepath.Join(base, filepath.FromSlash(l.Base))
	}

	res := &Result{
		Base:    root,
		dirSeen: make(map[string]bool),
	}

	// The base itself gets mkdir -p semantics. On failure the walk still
	// proceeds so every child records its own diagnostic.
	s.dir(res, root)
	s.walk(res, l.Tree, root, "")

	for _, rel := range l.Files {
		s.flatFile(res, root, rel)
	}

	return res, nil
}

// walk descends one sibling group in declared order, directories before
// their children.
func (s *Scaffolder) walk(res *Result, nodes []layout.Node, dir, rel string) {
	for i := range nodes {
		n := &nodes[i]
		name := n.EntryName()
		nrel := joinRel(rel, name)
		target := filepath.Join(dir, name)

		// An empty pattern matches every path, so only consult the
		// skip filter when the caller actually supplied one.
		if !s.opts.Skip.IsEmpty() {
			skip, err := s.opts.Skip.Match(nrel)
			if err != nil {
				res.Failures = append(res.Failures, Failure{Path: target, Op: opFor(n), Err: err})
				s.printf("error: %v", err)
				continue
			}
			if skip {
				res.Skipped = append(res.Skipped, nrel)
				continue
			}
		}

		if n.IsDir() {
			s.dir(res, target)
			s.walk(res, n.Children, target, nrel)
			continue
		}

		// The --only filter applies to files; directories are always
		// ensured so nested matches have somewhere to land.
		if !s.opts.Only.IsEmpty() {
			only, err := s.opts.Only.Match(nrel)
			if err != nil {
				res.Failures = append(res.Failures, Failure{Path: target, Op: OpWrite, Err: err})
				s.printf("error: %v", err)
				continue
			}
			if !only {
				res.Skipped = append(res.Skipped, nrel)
				continue
			}
		}

		s.file(res, target, nrel, n.Content)
	}
}

// flatFile creates one entry from the flat files list, ensuring implied
// parent directories first.
func (s *Scaffolder) flatFile(res *Result, root, rel string) {
	target := filepath.Join(root, filepath.FromSlash(rel))

	if !s.opts.Skip.IsEmpty() {
		skip, err := s.opts.Skip.Match(rel)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Path: target, Op: OpWrite, Err: err})
			s.printf("error: %v", err)
			return
		}
		if skip {
			res.Skipped = append(res.Skipped, rel)
			return
		}
	}
	if !s.opts.Only.IsEmpty() {
		only, err := s.opts.Only.Match(rel)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Path: target, Op: OpWrite, Err: err})
			s.printf("error: %v", err)
			return
		}
		if !only {
			res.Skipped = append(res.Skipped, rel)
			return
		}
	}

	if parent := filepath.Dir(target); parent != root {
		s.dir(res, parent)
	}
	s.file(res, target, rel, "")
}

// dir ensures one directory and records the outcome.
func (s *Scaffolder) dir(res *Result, path string) {
	if res.dirSeen[path] {
		return
	}
	res.dirSeen[path] = true

	if s.opts.DryRun {
		s.printf("mkdir -p %s", path)
		res.Dirs = append(res.Dirs, path)
		return
	}

	if err := s.EnsureDir(path); err != nil {
		res.Failures = append(res.Failures, Failure{Path: path, Op: OpMkdir, Err: err})
		s.printf("error: %v", err)
		return
	}
	res.Dirs = append(res.Dirs, path)
	if s.opts.Verbose {
		s.printf("dir:  %s", path)
	}
}

// file creates one file and records the outcome.
func (s *Scaffolder) file(res *Result, path, rel, content string) {
	if s.opts.DryRun {
		if content == "" {
			s.printf("touch %s", path)
		} else {
			s.printf("write %s (%d bytes)", path, len(content))
		}
		res.Files = append(res.Files, path)
		return
	}

	if err := s.writeFile(path, content, s.fileMode(rel)); err != nil {
		res.Failures = append(res.Failures, Failure{Path: path, Op: OpWrite, Err: err})
		s.printf("error: %v", err)
		return
	}
	res.Files = append(res.Files, path)
	if s.opts.Verbose {
		s.printf("file: %s", path)
	}
}

// EnsureDir creates path and all missing ancestors. It succeeds silently if
// the directory already exists and returns a *DirError when creation is
// impossible, including when the path collides with an existing file.
func (s *Scaffolder) EnsureDir(path string) error {
	info, err := os.Lstat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return &DirError{Path: path, Err: errors.New("path exists and is not a directory")}
	}

	if err := os.MkdirAll(path, s.opts.DirPerm); err != nil {
		return &DirError{Path: path, Err: err}
	}
	return nil
}

// WriteFile opens path for writing, truncating any existing file, writes
// content (empty by default), and closes it. Returns a *FileError on any
// I/O failure or when the path is an existing directory.
func (s *Scaffolder) WriteFile(path, content string) error {
	return s.writeFile(path, content, s.opts.FilePerm)
}

func (s *Scaffolder) writeFile(path, content string, mode os.FileMode) error {
	if info, err := os.Lstat(path); err == nil && info.IsDir() {
		return &FileError{Path: path, Err: errors.New("path exists and is a directory")}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}

	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr != nil {
		return &FileError{Path: path, Err: werr}
	}
	if cerr != nil {
		return &FileError{Path: path, Err: cerr}
	}
	return nil
}

// fileMode picks the mode for a file: 0755 when the relative path matches
// an --exec pattern, the configured default otherwise.
func (s *Scaffolder) fileMode(rel string) os.FileMode {
	if s.opts.Exec.IsEmpty() {
		return s.opts.FilePerm
	}
	if ok, err := s.opts.Exec.Match(rel); err == nil && ok {
		return 0755
	}
	return s.opts.FilePerm
}

func (s *Scaffolder) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.opts.Out, format+"\n", args...)
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

func opFor(n *layout.Node) string {
	if n.IsDir() {
		return OpMkdir
	}
	return OpWrite
}
