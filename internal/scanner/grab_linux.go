//go:build linux

package scanner

import (
	"os"

	"golang.org/x/sys/unix"
)

// eviocgrab _IOW('E', 0x90, int) de linux/input.h.
const eviocgrab = 0x40044590

func grabDevice(f *os.File) error {
	return unix.IoctlSetInt(int(f.Fd()), eviocgrab, 1)
}

func ungrabDevice(f *os.File) error {
	return unix.IoctlSetInt(int(f.Fd()), eviocgrab, 0)
}
