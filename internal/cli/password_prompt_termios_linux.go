//go:build linux

package cli

import "golang.org/x/sys/unix"

// ioctl requests for reading and writing terminal attributes.
const (
	getTermiosRequest = unix.TCGETS
	setTermiosRequest = unix.TCSETS
)
