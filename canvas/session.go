// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

// Session is the scoped handle returned by Push. Closing it performs the
// one Pop matching that Push:
//
//	s, err := c.Push()
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
// A session remembers the snapshot its Push created and only pops that
// snapshot. Closing a session while a later session is still open returns
// ErrSessionOrder and leaves the stack untouched.
type Session struct {
	stack *Stack
	snap  *snapshot
	done  bool
}

// Close pops the session's snapshot. It is a no-op on an already closed
// session and on a session whose stack has been closed.
func (s *Session) Close() error {
	if s == nil || s.done {
		return nil
	}
	if s.stack.closed {
		s.done = true
		return nil
	}
	if s.stack.top() != s.snap {
		return ErrSessionOrder
	}
	s.done = true
	return s.stack.Pop()
}

// Done reports whether the session's snapshot has been popped.
func (s *Session) Done() bool {
	return s.done
}
