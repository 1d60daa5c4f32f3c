package clip

// Errno is an OS last-error code as reported by the clipboard and global
// memory calls. Values follow the Windows system error codes.
type Errno uint32

const (
	ErrnoAccessDenied      Errno = 5
	ErrnoInvalidHandle     Errno = 6
	ErrnoNotEnoughMemory   Errno = 8
	ErrnoInvalidParameter  Errno = 87
	ErrnoNotLocked         Errno = 158
	ErrnoClipboardNotOpen  Errno = 1418
	ErrnoClipboardNotOwned Errno = 1421
)

// Code returns the numeric error code.
func (e Errno) Code() uint32 { return uint32(e) }
