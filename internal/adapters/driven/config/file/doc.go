// Package file provides a TOML file-based configuration store with
// optional live reload via filesystem notifications.
package file
