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

// Package mock provides in-memory transport drivers for tests.
//
// A Port buffers injected bytes and records everything written to it.
// Two ports can be linked so that writes on one arrive as input on the
// other, which lets two protocol sessions talk to each other in-process.
package mock

import (
	"errors"
	"sync"
	"time"

	"github.com/engdoreis/go-ldp/transport"
)

// ErrClosed is returned by I/O on a closed port.
var ErrClosed = errors.New("mock: port closed")

// Port is an in-memory transport.Port. It is safe for concurrent use.
type Port struct {
	// OnWrite, when set, is called with a copy of every successful write.
	OnWrite func(p []byte)
	// WriteErr, when set, fails every write.
	WriteErr error
	// ShortWrite, when set, makes writes report one byte less than requested.
	ShortWrite bool
	// ReadChunk limits how many bytes a single Read returns (0 = no limit).
	ReadChunk int

	peer    *Port
	inbox   []byte
	written [][]byte
	flushes int
	reads   int
	mu      sync.Mutex
	closed  bool
}

// NewPort creates an unlinked port.
func NewPort() *Port {
	return &Port{}
}

// Read returns injected bytes without blocking
func (p *Port) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reads++
	if p.closed {
		return 0, ErrClosed
	}

	limit := len(buf)
	if p.ReadChunk > 0 && limit > p.ReadChunk {
		limit = p.ReadChunk
	}
	n := copy(buf[:limit], p.inbox)
	p.inbox = p.inbox[n:]
	return n, nil
}

// Write records buf and forwards it to the linked peer
func (p *Port) Write(buf []byte) (int, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0, ErrClosed
	}
	if p.WriteErr != nil {
		err := p.WriteErr
		p.mu.Unlock()
		return 0, err
	}
	data := append([]byte(nil), buf...)
	p.written = append(p.written, data)
	peer := p.peer
	onWrite := p.OnWrite
	n := len(buf)
	if p.ShortWrite && n > 0 {
		n--
	}
	p.mu.Unlock()

	if peer != nil {
		peer.Inject(data)
	}
	if onWrite != nil {
		onWrite(append([]byte(nil), data...))
	}
	return n, nil
}

// Flush discards pending input
func (p *Port) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.flushes++
	p.inbox = nil
	return nil
}

// Close marks the port closed
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Inject appends bytes to the input queue
func (p *Port) Inject(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inbox = append(p.inbox, data...)
}

// Pending returns the number of unread input bytes
func (p *Port) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inbox)
}

// Written returns a copy of every buffer written so far
func (p *Port) Written() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.written))
	for i, w := range p.written {
		out[i] = append([]byte(nil), w...)
	}
	return out
}

// Flushes returns how many times Flush was called
func (p *Port) Flushes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushes
}

// Reads returns how many times Read was called
func (p *Port) Reads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads
}

// Closed reports whether Close was called
func (p *Port) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Link connects two ports in both directions.
func Link(a, b *Port) {
	a.mu.Lock()
	a.peer = b
	a.mu.Unlock()
	b.mu.Lock()
	b.peer = a
	b.mu.Unlock()
}

// Driver is an in-memory transport.Driver that always opens the same port.
type Driver struct {
	clock Clock
	// OpenErr, when set, makes Open fail.
	OpenErr error

	port   *Port
	opened []string
	mu     sync.Mutex
}

// NewDriver creates a driver serving a fresh port. A nil clock selects a ManualClock.
func NewDriver(clock Clock) *Driver {
	if clock == nil {
		clock = NewManualClock()
	}
	return &Driver{clock: clock, port: NewPort()}
}

// Pair creates two drivers whose ports are linked to each other.
func Pair(clock Clock) (a, b *Driver) {
	a = NewDriver(clock)
	b = NewDriver(clock)
	Link(a.port, b.port)
	return a, b
}

// Open returns the driver's port
func (d *Driver) Open(name string) (transport.Port, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened = append(d.opened, name)
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	return d.port, nil
}

// Tick delegates to the driver clock
func (d *Driver) Tick() time.Duration {
	return d.clock.Tick()
}

// Sleep delegates to the driver clock
func (d *Driver) Sleep(duration time.Duration) {
	d.clock.Sleep(duration)
}

// Port returns the port served by Open
func (d *Driver) Port() *Port {
	return d.port
}

// Opens returns the names passed to Open
func (d *Driver) Opens() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.opened...)
}

// Ensure Driver implements transport.Driver
var _ transport.Driver = (*Driver)(nil)
