//go:build !linux

package scanner

import (
	"errors"
	"os"
)

var errGrabUnsupported = errors.New("EVIOCGRAB solo existe en linux")

func grabDevice(*os.File) error { return errGrabUnsupported }

func ungrabDevice(*os.File) error { return nil }
