//go:build windows

package clip

import (
	"errors"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Bound once per process; the DLLs stay loaded for the process lifetime.
var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard    = user32.NewProc("OpenClipboard")
	procCloseClipboard   = user32.NewProc("CloseClipboard")
	procEmptyClipboard   = user32.NewProc("EmptyClipboard")
	procSetClipboardData = user32.NewProc("SetClipboardData")
	procGetClipboardData = user32.NewProc("GetClipboardData")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalSize   = kernel32.NewProc("GlobalSize")
	procSetLastError = kernel32.NewProc("SetLastError")
)

type winAPI struct{}

// System returns the user32/kernel32 clipboard API.
func System() API { return winAPI{} }

// lastError converts the error returned by LazyProc.Call into an Errno.
// Some calls fail without setting a last error; those report
// ErrnoInvalidParameter, matching what x/sys/windows does for errno 0.
func lastError(err error) error {
	var errno windows.Errno
	if errors.As(err, &errno) && errno != 0 {
		return Errno(errno)
	}
	return ErrnoInvalidParameter
}

// callFresh runs proc with the thread's last error reset to zero first, for
// calls whose zero return is only a failure when the last error is set.
func callFresh(proc *windows.LazyProc, args ...uintptr) (uintptr, windows.Errno) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	_, _, _ = procSetLastError.Call(0)
	r1, _, err := proc.Call(args...)
	var errno windows.Errno
	errors.As(err, &errno)
	return r1, errno
}

func (winAPI) OpenClipboard(owner uintptr) error {
	if r1, _, err := procOpenClipboard.Call(owner); r1 == 0 {
		return lastError(err)
	}
	return nil
}

func (winAPI) CloseClipboard() error {
	if r1, _, err := procCloseClipboard.Call(); r1 == 0 {
		return lastError(err)
	}
	return nil
}

func (winAPI) EmptyClipboard() error {
	if r1, _, err := procEmptyClipboard.Call(); r1 == 0 {
		return lastError(err)
	}
	return nil
}

func (winAPI) SetClipboardData(format Format, h Handle) error {
	if r1, _, err := procSetClipboardData.Call(uintptr(format), uintptr(h)); r1 == 0 {
		return lastError(err)
	}
	return nil
}

func (winAPI) GetClipboardData(format Format) (Handle, error) {
	r1, _, err := procGetClipboardData.Call(uintptr(format))
	if r1 == 0 {
		return 0, lastError(err)
	}
	return Handle(r1), nil
}

func (winAPI) GlobalAlloc(flags uint32, size uintptr) (Handle, error) {
	r1, _, err := procGlobalAlloc.Call(uintptr(flags), size)
	if r1 == 0 {
		return 0, lastError(err)
	}
	return Handle(r1), nil
}

// GlobalFree returns NULL on success and the handle on failure.
func (winAPI) GlobalFree(h Handle) error {
	if r1, _, err := procGlobalFree.Call(uintptr(h)); r1 != 0 {
		return lastError(err)
	}
	return nil
}

func (a winAPI) GlobalLock(h Handle) ([]byte, error) {
	p, _, err := procGlobalLock.Call(uintptr(h))
	if p == 0 {
		return nil, lastError(err)
	}
	size, err := a.GlobalSize(h)
	if err != nil {
		_, _ = a.GlobalUnlock(h)
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), size), nil
}

// GlobalUnlock returns nonzero while the lock count stays above zero. Zero
// means either "now unlocked" (last error NO_ERROR) or a real failure.
func (winAPI) GlobalUnlock(h Handle) (bool, error) {
	r1, errno := callFresh(procGlobalUnlock, uintptr(h))
	if r1 != 0 {
		return true, nil
	}
	if errno != 0 {
		return false, Errno(errno)
	}
	return false, nil
}

func (winAPI) GlobalSize(h Handle) (uintptr, error) {
	r1, errno := callFresh(procGlobalSize, uintptr(h))
	if r1 == 0 && errno != 0 {
		return 0, Errno(errno)
	}
	return r1, nil
}
