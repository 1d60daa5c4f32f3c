package clip

// Handle identifies an OS shared memory block (an HGLOBAL on Windows).
type Handle uintptr

// Format is a clipboard format identifier.
type Format uint32

// FormatText is the legacy ANSI text format (CF_TEXT). Data is stored with a
// single trailing NUL.
const FormatText Format = 1

// Global memory allocation flags.
const (
	gmemFixed    uint32 = 0x0000
	gmemMoveable uint32 = 0x0002
)

// API is the table of OS calls the clipboard layer is built on. Each method
// is a thin wrapper around one OS function; failures carry an Errno.
//
// Implementations: the user32/kernel32 bindings on Windows, and Sim.
type API interface {
	// OpenClipboard fails with ErrnoAccessDenied when another owner holds
	// the clipboard. owner may be 0.
	OpenClipboard(owner uintptr) error
	CloseClipboard() error
	EmptyClipboard() error

	// SetClipboardData hands h to the clipboard. On success the OS owns h.
	SetClipboardData(format Format, h Handle) error
	GetClipboardData(format Format) (Handle, error)

	GlobalAlloc(flags uint32, size uintptr) (Handle, error)
	GlobalFree(h Handle) error
	// GlobalLock returns a view of the whole block. The view is valid until
	// the matching GlobalUnlock.
	GlobalLock(h Handle) ([]byte, error)
	// GlobalUnlock reports stillLocked when the OS lock count is above zero
	// after the call. That is not a failure.
	GlobalUnlock(h Handle) (stillLocked bool, err error)
	GlobalSize(h Handle) (uintptr, error)
}
