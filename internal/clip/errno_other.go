//go:build !windows

package clip

import "strconv"

var errnoText = map[Errno]string{
	ErrnoAccessDenied:      "Access is denied.",
	ErrnoInvalidHandle:     "The handle is invalid.",
	ErrnoNotEnoughMemory:   "Not enough memory resources are available to process this command.",
	ErrnoInvalidParameter:  "The parameter is incorrect.",
	ErrnoNotLocked:         "The segment is already unlocked.",
	ErrnoClipboardNotOpen:  "Thread does not have a clipboard open.",
	ErrnoClipboardNotOwned: "Clipboard is not owned by this process.",
}

func (e Errno) Error() string {
	if s, ok := errnoText[e]; ok {
		return s
	}
	return "errno " + strconv.FormatUint(uint64(e), 10)
}
