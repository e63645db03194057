// Package cli maps command-line arguments onto the application
// configuration. It owns usage text and flag validation only; command
// semantics live in the app and project packages.
package cli
