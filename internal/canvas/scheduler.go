package canvas

type frameRequest struct {
	handle FrameHandle
	cb     func()
}

// FrameScheduler implements the request/cancel half of Host for hosts that
// drive their own repaint loop. The host calls RunFrame once per repaint.
// Callbacks requested while a frame runs are deferred to the next frame.
type FrameScheduler struct {
	last    FrameHandle
	pending []*frameRequest
	running []*frameRequest
}

// Request queues cb for the next frame.
func (s *FrameScheduler) Request(cb func()) FrameHandle {
	s.last++
	s.pending = append(s.pending, &frameRequest{handle: s.last, cb: cb})
	return s.last
}

// Cancel drops a queued request. Unknown or already run handles are ignored.
func (s *FrameScheduler) Cancel(h FrameHandle) {
	for i, r := range s.pending {
		if r.handle == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	for _, r := range s.running {
		if r.handle == h {
			r.cb = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

// RunFrame invokes every callback queued before the call, in request order,
// and returns how many ran.
func (s *FrameScheduler) RunFrame() int {
	s.running, s.pending = s.pending, nil
	ran := 0
	for _, r := range s.running {
		if r.cb == nil {
			continue
		}
		cb := r.cb
		r.cb = nil
		cb()
		ran++
	}
	s.running = nil
	return ran
}
