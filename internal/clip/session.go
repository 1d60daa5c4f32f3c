package clip

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"
)

// RetryConfig bounds how long Open keeps trying while the clipboard is busy.
// The zero value fails fast.
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns a short bounded retry suitable for interactive use.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  25 * time.Millisecond,
		MaxDelay:      250 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

// Manager hands out exclusive clipboard sessions.
type Manager struct {
	api   API
	owner uintptr
	retry RetryConfig
}

// NewManager returns a Manager that opens the clipboard on behalf of owner
// (a window handle, or 0 for the calling task).
func NewManager(api API, owner uintptr, retry RetryConfig) *Manager {
	return &Manager{api: api, owner: owner, retry: retry}
}

// Session is an open clipboard. It must be closed by the goroutine that
// opened it: the goroutine stays pinned to its OS thread until Close,
// because the OS ties clipboard ownership to the thread.
type Session struct {
	api    API
	closed bool
}

// Open acquires the clipboard. It fails with ErrBusy when another owner
// holds it, retrying with backoff up to the configured bound.
func (m *Manager) Open(ctx context.Context) (*Session, error) {
	delay := m.retry.InitialDelay
	for attempt := 0; ; attempt++ {
		s, err := m.tryOpen()
		if err == nil || !errors.Is(err, ErrBusy) || attempt >= m.retry.MaxRetries {
			return s, err
		}

		slog.Debug("clipboard busy, retrying", "attempt", attempt+1, "delay", delay)
		select {
		case <-ctx.Done():
			return nil, errors.Join(err, ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * m.retry.BackoffFactor)
		if delay > m.retry.MaxDelay {
			delay = m.retry.MaxDelay
		}
	}
}

func (m *Manager) tryOpen() (*Session, error) {
	runtime.LockOSThread()
	if err := m.api.OpenClipboard(m.owner); err != nil {
		runtime.UnlockOSThread()
		if errors.Is(err, ErrnoAccessDenied) {
			return nil, opError("open clipboard", ErrBusy, 0, err)
		}
		return nil, opError("open clipboard", ErrSyscall, 0, err)
	}
	return &Session{api: m.api}, nil
}

// Do runs fn inside a session. The session is closed on every exit path,
// panics included. When fn fails, its error is returned and a close failure
// is only logged.
func (m *Manager) Do(ctx context.Context, fn func(*Session) error) (err error) {
	s, err := m.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				slog.Warn("clipboard close failed", "err", cerr)
			}
		}
	}()
	return fn(s)
}

// Close releases the clipboard. The session is over even when the OS
// reports a failure. Closing an already closed session does nothing.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	defer runtime.UnlockOSThread()
	if err := s.api.CloseClipboard(); err != nil {
		return opError("close clipboard", ErrSyscall, 0, err)
	}
	return nil
}

// Clear empties the clipboard.
func (s *Session) Clear() error {
	if s.closed {
		return opError("empty clipboard", ErrSessionClosed, 0, nil)
	}
	if err := s.api.EmptyClipboard(); err != nil {
		return opError("empty clipboard", ErrSyscall, 0, err)
	}
	return nil
}

// SetText attaches h under format. On success the clipboard owns h and the
// caller must not free it.
func (s *Session) SetText(h Handle, format Format) error {
	if s.closed {
		return opError("set clipboard data", ErrSessionClosed, h, nil)
	}
	if err := s.api.SetClipboardData(format, h); err != nil {
		return opError("set clipboard data", ErrSyscall, h, err)
	}
	return nil
}

// Handle returns the block the clipboard holds for format. The block
// belongs to the clipboard.
func (s *Session) Handle(format Format) (Handle, error) {
	if s.closed {
		return 0, opError("get clipboard data", ErrSessionClosed, 0, nil)
	}
	h, err := s.api.GetClipboardData(format)
	if err != nil {
		if errors.Is(err, ErrnoClipboardNotOpen) {
			return 0, opError("get clipboard data", ErrSyscall, 0, err)
		}
		return 0, opError("get clipboard data", ErrNotFound, 0, err)
	}
	return h, nil
}
