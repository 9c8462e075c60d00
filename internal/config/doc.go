// Package config manages user-level settings stored at ~/.stubkit/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default base directory and default permissions used by apply.
package config
