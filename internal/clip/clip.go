// Package clip copies text into and out of the Windows clipboard.
//
// The layers mirror the OS model:
//
//	API          thin table of user32/kernel32 calls (Sim off Windows and in tests)
//	Manager      exclusive clipboard sessions, always closed on exit
//	Memory       shared memory blocks: allocate, lock, copy, unlock, free
//	Clipboard    CopyText / PasteText on top of the two
package clip

import (
	"context"
	"log/slog"
)

// Clipboard copies text to and from the clipboard in the legacy text format.
type Clipboard struct {
	sessions *Manager
	mem      *Memory
}

// New returns a Clipboard over api. Sessions are opened with the null owner.
func New(api API, retry RetryConfig) *Clipboard {
	return &Clipboard{
		sessions: NewManager(api, 0, retry),
		mem:      NewMemory(api),
	}
}

// CopyText replaces the clipboard contents with payload. There is no
// rollback: if attaching the new data fails after the clipboard was
// emptied, the clipboard stays empty.
func (c *Clipboard) CopyText(ctx context.Context, payload []byte) error {
	err := c.sessions.Do(ctx, func(s *Session) error {
		if err := s.Clear(); err != nil {
			return err
		}
		h, err := c.mem.CopyIn(payload)
		if err != nil {
			return err
		}
		if err := s.SetText(h, FormatText); err != nil {
			// still ours: the clipboard rejected it
			if ferr := c.mem.Free(h); ferr != nil {
				slog.Warn("freeing rejected block failed", "handle", h, "err", ferr)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	logPayload("clipboard copied", FormatText, payload)
	return nil
}

// PasteText returns the clipboard's text. It fails with ErrNotFound when the
// clipboard is empty or holds no text.
func (c *Clipboard) PasteText(ctx context.Context) ([]byte, error) {
	var out []byte
	err := c.sessions.Do(ctx, func(s *Session) error {
		h, err := s.Handle(FormatText)
		if err != nil {
			return err
		}
		out, err = c.mem.CopyOut(h)
		return err
	})
	if err != nil {
		return nil, err
	}
	logPayload("clipboard pasted", FormatText, out)
	return out, nil
}
