package clip

import "sync"

type call struct {
	op string
	h  Handle
}

// recordingAPI wraps a Sim, records every call and can inject failures.
type recordingAPI struct {
	*Sim

	mu    sync.Mutex
	calls []call
	fail  map[string]error
	busy  int // number of upcoming OpenClipboard calls that report busy
}

func newRecording() *recordingAPI {
	return &recordingAPI{Sim: NewSim(), fail: make(map[string]error)}
}

func (r *recordingAPI) record(op string, h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{op: op, h: h})
	return r.fail[op]
}

// count returns how many times op was called, for h or for any handle if h is 0.
func (r *recordingAPI) count(op string, h Handle) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.op == op && (h == 0 || c.h == h) {
			n++
		}
	}
	return n
}

// lastHandle returns the handle of the most recent call to op.
func (r *recordingAPI) lastHandle(op string) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].op == op {
			return r.calls[i].h
		}
	}
	return 0
}

func (r *recordingAPI) OpenClipboard(owner uintptr) error {
	if err := r.record("OpenClipboard", 0); err != nil {
		return err
	}
	r.mu.Lock()
	busy := r.busy > 0
	if busy {
		r.busy--
	}
	r.mu.Unlock()
	if busy {
		return ErrnoAccessDenied
	}
	return r.Sim.OpenClipboard(owner)
}

func (r *recordingAPI) CloseClipboard() error {
	// the simulated clipboard is released even when a failure is injected
	err := r.Sim.CloseClipboard()
	if ferr := r.record("CloseClipboard", 0); ferr != nil {
		return ferr
	}
	return err
}

func (r *recordingAPI) EmptyClipboard() error {
	if err := r.record("EmptyClipboard", 0); err != nil {
		return err
	}
	return r.Sim.EmptyClipboard()
}

func (r *recordingAPI) SetClipboardData(format Format, h Handle) error {
	if err := r.record("SetClipboardData", h); err != nil {
		return err
	}
	return r.Sim.SetClipboardData(format, h)
}

func (r *recordingAPI) GetClipboardData(format Format) (Handle, error) {
	if err := r.record("GetClipboardData", 0); err != nil {
		return 0, err
	}
	return r.Sim.GetClipboardData(format)
}

func (r *recordingAPI) GlobalAlloc(flags uint32, size uintptr) (Handle, error) {
	if err := r.record("GlobalAlloc", 0); err != nil {
		return 0, err
	}
	return r.Sim.GlobalAlloc(flags, size)
}

func (r *recordingAPI) GlobalFree(h Handle) error {
	if err := r.record("GlobalFree", h); err != nil {
		return err
	}
	return r.Sim.GlobalFree(h)
}

func (r *recordingAPI) GlobalLock(h Handle) ([]byte, error) {
	if err := r.record("GlobalLock", h); err != nil {
		return nil, err
	}
	return r.Sim.GlobalLock(h)
}

func (r *recordingAPI) GlobalUnlock(h Handle) (bool, error) {
	if err := r.record("GlobalUnlock", h); err != nil {
		return false, err
	}
	return r.Sim.GlobalUnlock(h)
}
