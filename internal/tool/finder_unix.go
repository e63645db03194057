//go:build unix

package tool

import (
	"os/exec"
	"syscall"
)

// FindExecutable resolves a command name to an executable path using the
// system PATH.
func FindExecutable(name string) (string, error) {
	return exec.LookPath(name)
}

// detachAttr places the child in its own session so it outlives the CLI
// process.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
