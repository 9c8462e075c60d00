// Package scaffold materializes layout trees onto the filesystem. It powers
// the "stubkit apply" and "stubkit plan" commands, creating every declared
// directory (mkdir -p semantics) and every declared file as an empty or
// fixed-content artifact. Individual failures are collected, not fatal: one
// unwritable path never prevents creation of the rest of the tree.
package scaffold
