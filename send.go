// go-ldp
// Copyright (c) 2025 The go-ldp Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-ldp.
//
// go-ldp is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-ldp is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ldp; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package ldp

import (
	"context"
	"errors"
	"fmt"

	"github.com/engdoreis/go-ldp/internal/retry"
	"go.uber.org/zap"
)

// SyncAttempts is the number of receive attempts a synchronous call makes
// before giving up.
const SyncAttempts = 5

// reply is what a matched response leaves behind for the caller.
type reply struct {
	n      int
	status StatusCode
}

// send builds the payload in the work buffer and hands it to the link.
func (s *Session) send(kind Kind, id byte, status StatusCode, body []byte) error {
	if s.closed {
		return StatusNotOpen
	}
	if len(body) > s.maxBody {
		return fmt.Errorf("%w: body of %d bytes exceeds %d", StatusParameter, len(body), s.maxBody)
	}

	if err := EncodeHeader(s.work, kind, id, status); err != nil {
		return err
	}
	n := copy(s.work[HeaderLength:], body)
	if err := s.link.Send(s.address, s.work[:HeaderLength+n]); err != nil {
		return fmt.Errorf("%w: %w", StatusProtocol, err)
	}
	return nil
}

// SendAndWait sends one frame and waits for the response with the same id.
// See SendAndWaitContext.
func (s *Session) SendAndWait(kind Kind, id byte, status StatusCode, body, out []byte) (int, error) {
	return s.SendAndWaitContext(context.Background(), kind, id, status, body, out)
}

// SendAndWaitContext sends one frame and then runs up to SyncAttempts
// receive attempts looking for a response carrying the same id.
//
// The first frame to arrive opens the reply gate, whether or not it is the
// reply. Until then only events reach their handler. Frames arriving after
// the gate opened are dispatched as if no call were pending, and a matching
// response among them still completes the call. If no attempt matches the
// call fails with StatusProtocol.
//
// When the response matches, its body is copied into out if out can hold
// all of it; out is zeroed first. The copied length is returned, together
// with nil for StatusOk or the response status as the error.
func (s *Session) SendAndWaitContext(
	ctx context.Context, kind Kind, id byte, status StatusCode, body, out []byte,
) (int, error) {
	if s.dispatching {
		return 0, fmt.Errorf("%w: synchronous call from inside a handler", StatusNotAvailable)
	}
	s.calls.Add(1)

	if err := s.send(kind, id, status, body); err != nil {
		s.callFailures.Add(1)
		return 0, err
	}

	s.waiting = true
	s.hasLast = false

	res, err := retry.WithRetry(ctx, retry.Config{
		Attempts: SyncAttempts,
		OnRetry: func(attempt int) error {
			s.log.Debug("no matching response yet",
				zap.Uint8("id", id), zap.Int("attempt", attempt))
			return nil
		},
	}, func() (reply, bool, error) {
		s.link.Process()
		if !s.matched(id) {
			return reply{}, true, nil
		}
		return reply{n: s.deliver(out), status: s.last.Status}, false, nil
	})
	if err != nil {
		s.callFailures.Add(1)
		if errors.Is(err, retry.ErrRetriesExhausted) {
			return 0, fmt.Errorf("%w: no response to %s 0x%02X: %w", StatusProtocol, kind, id, err)
		}
		return 0, fmt.Errorf("%w: %w", StatusTimeout, err)
	}

	if res.status != StatusOk {
		s.callFailures.Add(1)
	}
	return res.n, res.status.Err()
}

func (s *Session) matched(id byte) bool {
	return !s.waiting && s.hasLast && s.last.Kind == KindResponse && s.last.ID == id
}

// deliver copies the matched response body into out. An out buffer too
// small for the whole body is left untouched.
func (s *Session) deliver(out []byte) int {
	if out == nil {
		return 0
	}
	if len(out) < len(s.last.Body) {
		s.log.Debug("output buffer too small, response body not copied",
			zap.Int("out", len(out)), zap.Int("body", len(s.last.Body)))
		return 0
	}
	clear(out)
	return copy(out, s.last.Body)
}

// Call sends a command and waits for its response.
func (s *Session) Call(id byte, body, out []byte) (int, error) {
	return s.SendAndWait(KindCommand, id, StatusOk, body, out)
}

// CallContext is Call with a context checked between receive attempts.
func (s *Session) CallContext(ctx context.Context, id byte, body, out []byte) (int, error) {
	return s.SendAndWaitContext(ctx, KindCommand, id, StatusOk, body, out)
}

// SendAsync sends a command without waiting. The response is dispatched to
// the response handler by a later Run.
func (s *Session) SendAsync(id byte, body []byte) error {
	return s.send(KindCommand, id, StatusOk, body)
}

// EmitEvent sends an event
func (s *Session) EmitEvent(id byte, body []byte) error {
	return s.send(KindEvent, id, StatusOk, body)
}

// SendResponse answers a command
func (s *Session) SendResponse(id byte, status StatusCode, body []byte) error {
	return s.send(KindResponse, id, status, body)
}
