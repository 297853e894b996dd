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

// Package tp implements the transport protocol link layer: addressed,
// checksummed frames over a polled byte stream.
//
// A Session owns one driver port and two frame buffers carved from a caller
// supplied memory region. Send writes exactly one frame; Process runs the
// receive state machine exactly once and hands a valid frame to the
// registered callback. Neither retries: retry policy belongs to the layer
// above.
//
// Thread Safety: Session is NOT thread-safe. Send, Process and Close must be
// called from a single goroutine. Stats may be called from any goroutine.
package tp

import (
	"errors"
	"time"

	"github.com/engdoreis/go-ldp/internal/arena"
	"github.com/engdoreis/go-ldp/internal/frame"
	"github.com/engdoreis/go-ldp/transport"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single Process call.
	DefaultTimeout = 2000 * time.Millisecond
	// PollDelay is how long the receive loop sleeps after an empty read.
	PollDelay = time.Millisecond
)

// ReceiveFunc is called for every valid frame. payload aliases the session's
// response buffer and is only valid until the callback returns.
type ReceiveFunc func(address byte, payload []byte)

// Config contains configuration options for a Session
type Config struct {
	// Logger receives link diagnostics. Nil disables logging.
	Logger *zap.Logger
	// Timeout bounds each Process call, measured from its start.
	Timeout time.Duration
	// MaxPayload is the largest payload accepted in either direction.
	// Zero derives it from the region size.
	MaxPayload int
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
	}
}

// RegionSize returns the memory a session needs for the given payload ceiling:
// one command frame buffer and one response frame buffer.
func RegionSize(maxPayload int) int {
	return 2 * frame.EncodedLength(maxPayload)
}

// Session is one end of a transport protocol link.
type Session struct {
	driver   transport.Driver
	port     transport.Port
	receive  ReceiveFunc
	log      *zap.Logger
	link     *link
	portName string
	command  []byte
	stats    counters
	timeout  time.Duration
}

// Open validates and carves region, then opens the named port.
// On failure nothing is left open.
func Open(driver transport.Driver, portName string, region []byte, receive ReceiveFunc, cfg Config) (*Session, error) {
	if driver == nil {
		return nil, &Error{Op: "open", Port: portName, Err: ErrNilDriver}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	maxPayload := cfg.MaxPayload
	if maxPayload <= 0 {
		maxPayload = len(region)/2 - frame.Overhead
	}
	if maxPayload > frame.MaxPayloadLength {
		maxPayload = frame.MaxPayloadLength
	}
	if maxPayload < 0 || RegionSize(maxPayload) > len(region) {
		return nil, &Error{Op: "open", Port: portName, Err: ErrRegionTooSmall}
	}

	mem := arena.New(region)
	command, err := mem.Carve(frame.EncodedLength(maxPayload))
	if err != nil {
		return nil, &Error{Op: "open", Port: portName, Err: errors.Join(ErrRegionTooSmall, err)}
	}
	response, err := mem.Carve(frame.EncodedLength(maxPayload))
	if err != nil {
		return nil, &Error{Op: "open", Port: portName, Err: errors.Join(ErrRegionTooSmall, err)}
	}

	port, err := driver.Open(portName)
	if err != nil {
		return nil, &Error{Op: "open", Port: portName, Err: errors.Join(ErrOpenFailed, err)}
	}
	if port == nil {
		return nil, &Error{Op: "open", Port: portName, Err: ErrOpenFailed}
	}

	s := &Session{
		driver:   driver,
		port:     port,
		receive:  receive,
		log:      cfg.Logger.With(zap.String("port", portName)),
		link:     newLink(response),
		portName: portName,
		command:  command,
		timeout:  cfg.Timeout,
	}
	s.log.Info("transport session opened",
		zap.Int("max_payload", maxPayload),
		zap.Duration("timeout", cfg.Timeout))
	return s, nil
}

// MaxPayload returns the largest payload the session sends or accepts
func (s *Session) MaxPayload() int {
	return s.link.maxPayload
}

// Timeout returns the per-Process receive deadline
func (s *Session) Timeout() time.Duration {
	return s.timeout
}

// PortName returns the name the port was opened with
func (s *Session) PortName() string {
	return s.portName
}

// SetReceiver replaces the receive callback
func (s *Session) SetReceiver(receive ReceiveFunc) {
	s.receive = receive
}

// Stats returns a snapshot of the link counters
func (s *Session) Stats() Stats {
	return s.stats.snapshot()
}

// IsOpen returns true until Close is called
func (s *Session) IsOpen() bool {
	return s.port != nil
}

// Send encodes and writes one frame. Pending input is flushed first so a
// stale reply is never mistaken for the answer to this frame.
func (s *Session) Send(address byte, payload []byte) error {
	if s.port == nil {
		return &Error{Op: "send", Port: s.portName, Err: ErrClosed}
	}

	n, err := frame.EncodeTo(s.command, address, payload)
	if err != nil {
		s.stats.sendErrors.Add(1)
		return &Error{Op: "send", Port: s.portName, Err: err}
	}

	if err := s.port.Flush(); err != nil {
		s.log.Debug("input flush failed", zap.Error(err))
	}

	written, err := s.port.Write(s.command[:n])
	if err != nil {
		s.stats.sendErrors.Add(1)
		return &Error{Op: "send", Port: s.portName, Err: err}
	}
	if written != n {
		s.stats.sendErrors.Add(1)
		return &Error{Op: "send", Port: s.portName, Err: ErrShortWrite}
	}

	s.stats.framesSent.Add(1)
	return nil
}

// Process runs the receive state machine once and, if a valid frame
// arrived, passes it to the receive callback. Failures are not reported:
// they only show up as the absence of a callback.
func (s *Session) Process() {
	if s.port == nil {
		return
	}
	s.stats.processCalls.Add(1)

	state := s.acquire()
	switch state {
	case StateSuccess:
		s.stats.framesReceived.Add(1)
	case StateTimedOut:
		s.stats.timeouts.Add(1)
	case StateChecksumMismatch:
		s.stats.checksumErrors.Add(1)
		s.log.Debug("dropping frame with bad checksum")
	case StateMalformed:
		s.stats.malformedFrames.Add(1)
		s.log.Debug("dropping malformed frame", zap.Int("length", frame.PayloadLength(s.link.buf)))
	default:
	}
	if s.link.discarded > 0 {
		s.stats.discardedBytes.Add(uint64(s.link.discarded))
		s.log.Debug("discarded bytes while waiting for sync", zap.Int("count", s.link.discarded))
	}

	if state == StateSuccess && s.receive != nil {
		address, payload := s.link.received()
		s.receive(address, payload)
	}
}

// acquire drives the link state machine from StateIdle to a terminal state.
// The deadline is checked on every state entry, before the driver is polled.
func (s *Session) acquire() State {
	l := s.link
	l.reset()
	started := s.driver.Tick()
	l.start()

	for !l.state.Terminal() {
		if l.state == StateValidate {
			l.validate()
			continue
		}
		if s.driver.Tick()-started > s.timeout {
			return l.expire()
		}

		n, err := s.port.Read(l.pending())
		if err != nil {
			s.stats.readErrors.Add(1)
			s.log.Debug("read failed", zap.Error(err), zap.Stringer("state", l.state))
			n = 0
		}
		if n == 0 {
			s.driver.Sleep(PollDelay)
			continue
		}
		l.advance(n)
	}
	return l.state
}

// Close releases the port. Further calls are no-ops.
func (s *Session) Close() error {
	if s.port == nil {
		return nil
	}
	port := s.port
	s.port = nil
	if err := port.Close(); err != nil {
		return &Error{Op: "close", Port: s.portName, Err: err}
	}
	s.log.Info("transport session closed")
	return nil
}
