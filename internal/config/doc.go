// Package config manages user-level settings stored at ~/.rules/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the store root and the ignore patterns applied to every link pass.
package config
