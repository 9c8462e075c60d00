// Package layouts ships the built-in layouts embedded in the binary: the
// storage module, the OAuth module, and the analytics plugin trees. They can
// be applied by name or dumped with "stubkit show" as a starting point for
// custom layouts.
package layouts
