//go:build !windows

package main

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr puts the spawned server in its own process group
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
