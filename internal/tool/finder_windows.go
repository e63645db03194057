//go:build windows

package tool

import (
	"os/exec"
	"syscall"
)

// FindExecutable resolves a command name to an executable path using the
// system PATH. LookPath already appends PATHEXT extensions on Windows.
func FindExecutable(name string) (string, error) {
	return exec.LookPath(name)
}

// detachAttr starts the child in a new process group so console signals do
// not reach it after the CLI exits.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
