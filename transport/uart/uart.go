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

// Package uart provides a serial port driver built on go.bug.st/serial
package uart

import (
	"errors"
	"fmt"
	"time"

	"github.com/engdoreis/go-ldp/transport"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is used when no baud rate option is given.
	DefaultBaudRate = 115200
	// DefaultPollInterval bounds how long a single Read waits for data.
	DefaultPollInterval = 5 * time.Millisecond
)

// ErrNotOpen is returned by operations on a closed port.
var ErrNotOpen = errors.New("uart: port not open")

// Option configures a Driver.
type Option func(*Driver) error

// WithBaudRate sets the line speed.
func WithBaudRate(baud int) Option {
	return func(d *Driver) error {
		if baud <= 0 {
			return fmt.Errorf("invalid baud rate %d", baud)
		}
		d.mode.BaudRate = baud
		return nil
	}
}

// WithPollInterval sets the serial read timeout used to emulate a non-blocking read.
func WithPollInterval(interval time.Duration) Option {
	return func(d *Driver) error {
		if interval <= 0 {
			return fmt.Errorf("invalid poll interval %v", interval)
		}
		d.pollInterval = interval
		return nil
	}
}

// WithMode replaces the whole serial mode (data bits, parity, stop bits).
func WithMode(mode serial.Mode) Option {
	return func(d *Driver) error {
		d.mode = mode
		return nil
	}
}

// Driver implements transport.Driver for serial ports.
type Driver struct {
	start        time.Time
	mode         serial.Mode
	pollInterval time.Duration
}

// New creates a serial driver. The monotonic clock starts now.
func New(opts ...Option) (*Driver, error) {
	d := &Driver{
		start: time.Now(),
		mode: serial.Mode{
			BaudRate: DefaultBaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
		pollInterval: DefaultPollInterval,
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Open opens the serial port and configures its read timeout
func (d *Driver) Open(name string) (transport.Port, error) {
	mode := d.mode
	p, err := serial.Open(name, &mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}

	if err := p.SetReadTimeout(d.pollInterval); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", name, err)
	}

	return &Port{port: p, name: name}, nil
}

// Tick returns the time elapsed since the driver was created
func (d *Driver) Tick() time.Duration {
	return time.Since(d.start)
}

// Sleep pauses the caller
func (*Driver) Sleep(duration time.Duration) {
	time.Sleep(duration)
}

// BaudRate returns the configured line speed
func (d *Driver) BaudRate() int {
	return d.mode.BaudRate
}

// PollInterval returns the configured read timeout
func (d *Driver) PollInterval() time.Duration {
	return d.pollInterval
}

// Port is an open serial port.
type Port struct {
	port serial.Port
	name string
}

// Read returns 0, nil when the read timeout elapses without data
func (p *Port) Read(buf []byte) (int, error) {
	if p.port == nil {
		return 0, ErrNotOpen
	}
	if len(buf) == 0 {
		return 0, nil
	}
	n, err := p.port.Read(buf)
	if err != nil {
		return n, fmt.Errorf("UART read failed: %w", err)
	}
	return n, nil
}

// Write sends buf and waits until it has been transmitted
func (p *Port) Write(buf []byte) (int, error) {
	if p.port == nil {
		return 0, ErrNotOpen
	}
	n, err := p.port.Write(buf)
	if err != nil {
		return n, fmt.Errorf("UART write failed: %w", err)
	}
	if err := p.port.Drain(); err != nil {
		return n, fmt.Errorf("UART drain failed: %w", err)
	}
	return n, nil
}

// Flush discards unread input
func (p *Port) Flush() error {
	if p.port == nil {
		return ErrNotOpen
	}
	if err := p.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("UART input flush failed: %w", err)
	}
	return nil
}

// Close closes the serial port
func (p *Port) Close() error {
	if p.port == nil {
		return nil
	}
	err := p.port.Close()
	p.port = nil
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", p.name, err)
	}
	return nil
}

// Name returns the port name
func (p *Port) Name() string {
	return p.name
}

// IsConnected returns true if the port is open
func (p *Port) IsConnected() bool {
	return p.port != nil
}

// Ensure Driver implements transport.Driver
var _ transport.Driver = (*Driver)(nil)
