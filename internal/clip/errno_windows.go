//go:build windows

package clip

import "golang.org/x/sys/windows"

func (e Errno) Error() string { return windows.Errno(e).Error() }
