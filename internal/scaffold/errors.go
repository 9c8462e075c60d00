package scaffold

import "fmt"

// DirError reports a directory that could not be created, such as a
// permission failure or a path that already exists as a regular file.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("creating directory %s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// FileError reports a file that could not be opened or written.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("creating file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
