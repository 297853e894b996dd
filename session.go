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
	"sync/atomic"
	"time"

	"github.com/engdoreis/go-ldp/internal/arena"
	"github.com/engdoreis/go-ldp/tp"
	"github.com/engdoreis/go-ldp/transport"
	"go.uber.org/zap"
)

// Handler processes frames dispatched by a Session.
type Handler interface {
	HandleFrame(s *Session, address byte, f *Frame)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(s *Session, address byte, f *Frame)

// HandleFrame calls fn(s, address, f)
func (fn HandlerFunc) HandleFrame(s *Session, address byte, f *Frame) {
	fn(s, address, f)
}

// Stats is a snapshot of the session counters, including those of the
// underlying link.
type Stats struct {
	tp.Stats
	Calls        uint64
	CallFailures uint64
	Dispatched   uint64
	Dropped      uint64
}

// Session is a device protocol endpoint on top of one transport session.
//
// Thread Safety: Session is NOT thread-safe. All methods except Stats must
// be called from the goroutine that polls it. Handlers run on that goroutine
// from inside Run or a synchronous call.
type Session struct {
	link     *tp.Session
	log      *zap.Logger
	handlers [numKinds]Handler
	last     Frame
	work     []byte
	timeout  time.Duration
	maxBody  int

	calls        atomic.Uint64
	callFailures atomic.Uint64
	dispatched   atomic.Uint64
	dropped      atomic.Uint64

	address     byte
	hasLast     bool
	waiting     bool
	dispatching bool
	closed      bool
}

// RequiredRegionSize returns the smallest memory region New accepts for
// the given body ceiling: the outgoing work buffer plus the link buffers.
func RequiredRegionSize(maxBody int) int {
	payload := HeaderLength + maxBody
	return payload + tp.RegionSize(payload)
}

// New carves region and opens the named port through driver. Errors wrap
// StatusParameter for bad arguments and StatusNotOpen when the driver
// cannot open the port; in both cases nothing is left open.
func New(driver transport.Driver, port string, region []byte, opts ...Option) (*Session, error) {
	s := &Session{
		log:     zap.NewNop(),
		timeout: tp.DefaultTimeout,
		maxBody: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("%w: %w", StatusParameter, err)
		}
	}
	if driver == nil {
		return nil, fmt.Errorf("%w: driver is nil", StatusParameter)
	}

	need := RequiredRegionSize(s.maxBody)
	if len(region) < need {
		return nil, fmt.Errorf("%w: region of %d bytes, need %d", StatusParameter, len(region), need)
	}

	mem := arena.New(region)
	work, err := mem.Carve(HeaderLength + s.maxBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", StatusParameter, err)
	}
	s.work = work

	link, err := tp.Open(driver, port, mem.Rest(), s.receive, tp.Config{
		Logger:     s.log,
		Timeout:    s.timeout,
		MaxPayload: HeaderLength + s.maxBody,
	})
	if err != nil {
		if errors.Is(err, tp.ErrOpenFailed) {
			return nil, fmt.Errorf("%w: %w", StatusNotOpen, err)
		}
		return nil, fmt.Errorf("%w: %w", StatusParameter, err)
	}
	s.link = link
	return s, nil
}

// Register installs h in the slot for kind, replacing any previous handler.
func (s *Session) Register(kind Kind, h Handler) error {
	if !kind.Valid() || h == nil {
		return StatusParameter
	}
	if fn, ok := h.(HandlerFunc); ok && fn == nil {
		return StatusParameter
	}
	s.handlers[kind] = h
	return nil
}

// RegisterEventHandler installs the handler for incoming events
func (s *Session) RegisterEventHandler(h Handler) error {
	return s.Register(KindEvent, h)
}

// RegisterCommandHandler installs the handler for incoming commands
func (s *Session) RegisterCommandHandler(h Handler) error {
	return s.Register(KindCommand, h)
}

// RegisterResponseHandler installs the handler for responses that arrive
// outside a synchronous call
func (s *Session) RegisterResponseHandler(h Handler) error {
	return s.Register(KindResponse, h)
}

// receive is the link callback. Every decodable frame becomes the last
// received frame and opens the reply gate, whether or not it is the
// reply a synchronous call is waiting for. While the gate is set only
// events are dispatched.
func (s *Session) receive(address byte, payload []byte) {
	f, err := DecodeHeader(payload)
	if err != nil {
		s.dropped.Add(1)
		s.log.Debug("dropping undecodable frame", zap.Error(err))
		return
	}

	s.last = f
	s.hasLast = true
	if !s.waiting || f.Kind == KindEvent {
		s.dispatch(address, f)
	}
	s.waiting = false
}

func (s *Session) dispatch(address byte, f Frame) {
	if !f.Kind.Valid() {
		s.dropped.Add(1)
		s.log.Debug("no slot for frame kind", zap.Stringer("kind", f.Kind))
		return
	}
	h := s.handlers[f.Kind]
	if h == nil {
		return
	}

	s.dispatched.Add(1)
	s.dispatching = true
	defer func() { s.dispatching = false }()
	h.HandleFrame(s, address, &f)
}

// Run performs one receive attempt and dispatches whatever arrives.
func (s *Session) Run() error {
	if s.closed {
		return StatusNotOpen
	}
	s.link.Process()
	return nil
}

// Serve calls Run until ctx is done or the session is closed.
func (s *Session) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.Run(); err != nil {
			return err
		}
	}
}

// Close releases the port. The session cannot be used afterwards.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.link.Close(); err != nil {
		return fmt.Errorf("%w: %w", StatusGeneral, err)
	}
	return nil
}

// Address returns the peer address used for outgoing frames
func (s *Session) Address() byte {
	return s.address
}

// SetAddress changes the peer address used for outgoing frames
func (s *Session) SetAddress(address byte) {
	s.address = address
}

// Waiting reports whether a synchronous call is still waiting for its
// reply gate to open. It stays set after a call gives up until the next
// frame arrives.
func (s *Session) Waiting() bool {
	return s.waiting
}

// MaxBodySize returns the largest body the session can send
func (s *Session) MaxBodySize() int {
	return s.maxBody
}

// PortName returns the name of the underlying port
func (s *Session) PortName() string {
	return s.link.PortName()
}

// Stats returns a snapshot of the session counters. It is safe to call
// from any goroutine.
func (s *Session) Stats() Stats {
	return Stats{
		Stats:        s.link.Stats(),
		Calls:        s.calls.Load(),
		CallFailures: s.callFailures.Load(),
		Dispatched:   s.dispatched.Load(),
		Dropped:      s.dropped.Load(),
	}
}
