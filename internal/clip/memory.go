package clip

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
)

var (
	errStillLocked = errors.New("block is locked")
	errShortBlock  = errors.New("block smaller than requested")
)

// Memory moves bytes in and out of OS shared memory blocks.
//
// Lock depth is tracked here per handle rather than read back from the OS:
// GlobalUnlock's "still locked" result also covers locks held by others, so
// it is logged and never treated as a failure. Unlocking a handle this
// Memory does not hold locked fails with ErrNotLocked.
type Memory struct {
	api API

	mu    sync.Mutex
	depth map[Handle]int
}

func NewMemory(api API) *Memory {
	return &Memory{api: api, depth: make(map[Handle]int)}
}

// Allocate requests a new block of size bytes.
func (m *Memory) Allocate(size uintptr, moveable bool) (Handle, error) {
	flags := gmemFixed
	if moveable {
		flags = gmemMoveable
	}
	h, err := m.api.GlobalAlloc(flags, size)
	if err != nil {
		return 0, opError("allocate", ErrAlloc, 0, err)
	}
	return h, nil
}

// Free releases an application-owned block. Never call it on a block that
// was attached to the clipboard.
func (m *Memory) Free(h Handle) error {
	if m.locked(h) {
		return opError("free", ErrSyscall, h, errStillLocked)
	}
	if err := m.api.GlobalFree(h); err != nil {
		return opError("free", ErrSyscall, h, err)
	}
	return nil
}

// Lock returns a view of the block's bytes, valid until Unlock.
func (m *Memory) Lock(h Handle) ([]byte, error) {
	buf, err := m.api.GlobalLock(h)
	if err != nil {
		return nil, opError("lock", ErrLock, h, err)
	}
	m.mu.Lock()
	m.depth[h]++
	m.mu.Unlock()
	return buf, nil
}

// Unlock releases one lock taken with Lock.
func (m *Memory) Unlock(h Handle) error {
	m.mu.Lock()
	d, ok := m.depth[h]
	if !ok {
		m.mu.Unlock()
		return opError("unlock", ErrNotLocked, h, nil)
	}
	if d == 1 {
		delete(m.depth, h)
	} else {
		m.depth[h] = d - 1
	}
	m.mu.Unlock()

	stillLocked, err := m.api.GlobalUnlock(h)
	if err != nil {
		return opError("unlock", ErrSyscall, h, err)
	}
	if stillLocked && d == 1 {
		slog.Debug("shared memory block still locked elsewhere", "handle", h)
	}
	return nil
}

// WithLock locks h, runs fn with the block's bytes and unlocks h on every
// exit path, panics included.
func (m *Memory) WithLock(h Handle, fn func(buf []byte) error) (err error) {
	buf, err := m.Lock(h)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := m.Unlock(h); uerr != nil && err == nil {
			err = uerr
		}
	}()
	return fn(buf)
}

// CopyIn allocates a block holding payload followed by a NUL terminator and
// returns it unlocked. The caller owns the block. If the copy fails the
// block is freed before returning.
func (m *Memory) CopyIn(payload []byte) (Handle, error) {
	size := len(payload) + 1
	h, err := m.Allocate(uintptr(size), true)
	if err != nil {
		return 0, err
	}

	err = m.WithLock(h, func(buf []byte) error {
		if len(buf) < size {
			return opError("copy in", ErrAlloc, h, errShortBlock)
		}
		n := copy(buf, payload)
		buf[n] = 0
		return nil
	})
	if err != nil {
		if ferr := m.Free(h); ferr != nil {
			slog.Warn("freeing scratch block failed", "handle", h, "err", ferr)
		}
		return 0, err
	}
	return h, nil
}

// CopyOut returns the text held in h, up to the first NUL or the end of the
// block. h is not freed.
func (m *Memory) CopyOut(h Handle) ([]byte, error) {
	var out []byte
	err := m.WithLock(h, func(buf []byte) error {
		n := bytes.IndexByte(buf, 0)
		if n < 0 {
			n = len(buf)
		}
		out = make([]byte, n)
		copy(out, buf[:n])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Memory) locked(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.depth[h] > 0
}
