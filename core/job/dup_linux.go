//go:build linux

package job

import "golang.org/x/sys/unix"

// dupOnto makes newfd a copy of oldfd. dup2 isn't available on every Linux
// architecture, dup3 is.
func dupOnto(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}
