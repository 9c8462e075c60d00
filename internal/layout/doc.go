// Package layout handles parsing and validation of stubkit layout manifests.
// A layout describes a directory/file tree in two shapes — a nested tree of
// dir/file nodes and a flat list of relative file paths — and provides JSON
// Schema validation against the embedded layout schema.
package layout
