package clip

import "sync"

const simMaxBlock = 64 << 20

type simBlock struct {
	data     []byte
	locks    int
	attached bool
}

// Sim is an in-memory API. It keeps the rules the OS enforces: a single
// clipboard owner, lock counts per block, and ownership transfer on
// SetClipboardData (attached blocks are freed by the clipboard when they are
// replaced or emptied, and may not be freed by the caller).
//
// Sim is safe for concurrent use.
type Sim struct {
	mu     sync.Mutex
	open   bool
	owner  uintptr
	data   map[Format]Handle
	blocks map[Handle]*simBlock
	next   Handle
	limit  uintptr
}

// NewSim returns an empty simulated clipboard.
func NewSim() *Sim {
	return &Sim{
		data:   make(map[Format]Handle),
		blocks: make(map[Handle]*simBlock),
		next:   0x1000,
		limit:  simMaxBlock,
	}
}

func (s *Sim) OpenClipboard(owner uintptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		return ErrnoAccessDenied
	}
	s.open = true
	s.owner = owner
	return nil
}

func (s *Sim) CloseClipboard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrnoClipboardNotOpen
	}
	s.open = false
	s.owner = 0
	return nil
}

func (s *Sim) EmptyClipboard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrnoClipboardNotOpen
	}
	for f, h := range s.data {
		delete(s.blocks, h)
		delete(s.data, f)
	}
	return nil
}

func (s *Sim) SetClipboardData(format Format, h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrnoClipboardNotOpen
	}
	b, ok := s.blocks[h]
	if !ok || b.attached {
		return ErrnoInvalidHandle
	}
	if prev, ok := s.data[format]; ok {
		delete(s.blocks, prev)
	}
	b.attached = true
	s.data[format] = h
	return nil
}

func (s *Sim) GetClipboardData(format Format) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return 0, ErrnoClipboardNotOpen
	}
	h, ok := s.data[format]
	if !ok {
		return 0, ErrnoInvalidHandle
	}
	return h, nil
}

func (s *Sim) GlobalAlloc(flags uint32, size uintptr) (Handle, error) {
	if flags&^(gmemMoveable|gmemFixed) != 0 {
		return 0, ErrnoInvalidParameter
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if size > s.limit {
		return 0, ErrnoNotEnoughMemory
	}
	h := s.next
	s.next += 0x10
	s.blocks[h] = &simBlock{data: make([]byte, size)}
	return h, nil
}

func (s *Sim) GlobalFree(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blocks[h]
	switch {
	case !ok || b.attached:
		return ErrnoInvalidHandle
	case b.locks > 0:
		return ErrnoAccessDenied
	}
	delete(s.blocks, h)
	return nil
}

func (s *Sim) GlobalLock(h Handle) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blocks[h]
	if !ok {
		return nil, ErrnoInvalidHandle
	}
	if len(b.data) == 0 {
		// zero-sized moveable blocks are discarded and cannot be locked
		return nil, ErrnoNotEnoughMemory
	}
	b.locks++
	return b.data, nil
}

func (s *Sim) GlobalUnlock(h Handle) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blocks[h]
	if !ok {
		return false, ErrnoInvalidHandle
	}
	if b.locks == 0 {
		return false, ErrnoNotLocked
	}
	b.locks--
	return b.locks > 0, nil
}

func (s *Sim) GlobalSize(h Handle) (uintptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blocks[h]
	if !ok {
		return 0, ErrnoInvalidHandle
	}
	return uintptr(len(b.data)), nil
}

// Blocks returns the number of live blocks, attached or not.
func (s *Sim) Blocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blocks)
}
