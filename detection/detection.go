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

// Package detection finds serial ports a link can be opened on.
package detection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// ErrNoPorts is returned when no usable serial port was found.
var ErrNoPorts = errors.New("no serial ports found")

// PortInfo describes one serial port.
type PortInfo struct {
	Path         string
	Name         string
	VIDPID       string
	Manufacturer string
	Product      string
	SerialNumber string
	IsUSB        bool
}

// Options configures port discovery.
type Options struct {
	// Blocklist holds VID:PID pairs that are never returned.
	Blocklist []string
	// IgnorePaths holds port paths that are never returned.
	IgnorePaths []string
	// USBOnly drops ports that are not backed by a USB adapter.
	USBOnly bool
}

// DefaultOptions returns the default discovery options
func DefaultOptions() Options {
	return Options{
		Blocklist: DefaultBlocklist(),
	}
}

// lister returns the raw port list. Replaced in tests.
var lister = systemPorts

// ListPorts returns the usable serial ports sorted by path.
func ListPorts(ctx context.Context, opts Options) ([]PortInfo, error) {
	ports, err := lister(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}

	ports = filterPorts(ports, opts)
	if len(ports) == 0 {
		return nil, ErrNoPorts
	}
	return ports, nil
}

func filterPorts(ports []PortInfo, opts Options) []PortInfo {
	out := make([]PortInfo, 0, len(ports))
	for _, p := range ports {
		switch {
		case opts.USBOnly && !p.IsUSB:
		case IsBlocked(p.VIDPID, opts.Blocklist):
		case IsPathIgnored(p.Path, opts.IgnorePaths):
		default:
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// systemPorts merges the enumerator's view with whatever extra ports the
// platform reports.
func systemPorts(ctx context.Context) ([]PortInfo, error) {
	details, enumErr := enumerator.GetDetailedPortsList()
	extra, platformErr := platformPorts(ctx)
	if enumErr != nil {
		if platformErr != nil {
			return nil, errors.Join(enumErr, platformErr)
		}
		if len(extra) == 0 {
			return nil, enumErr
		}
	}
	return mergePorts(fromDetails(details), extra), nil
}

func fromDetails(details []*enumerator.PortDetails) []PortInfo {
	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		if d == nil || d.Name == "" {
			continue
		}
		p := PortInfo{
			Path:         d.Name,
			Name:         d.Name,
			Product:      d.Product,
			SerialNumber: d.SerialNumber,
			IsUSB:        d.IsUSB,
		}
		if d.IsUSB && d.VID != "" && d.PID != "" {
			p.VIDPID = strings.ToUpper(d.VID + ":" + d.PID)
		}
		ports = append(ports, p)
	}
	return ports
}

// mergePorts adds the extra ports whose path the primary list does not
// already have, and fills in metadata missing from the primary entries.
func mergePorts(primary, extra []PortInfo) []PortInfo {
	byPath := make(map[string]int, len(primary))
	for i, p := range primary {
		byPath[normalizePath(p.Path)] = i
	}

	for _, e := range extra {
		i, ok := byPath[normalizePath(e.Path)]
		if !ok {
			byPath[normalizePath(e.Path)] = len(primary)
			primary = append(primary, e)
			continue
		}
		p := &primary[i]
		if p.Name == p.Path && e.Name != "" {
			p.Name = e.Name
		}
		if p.VIDPID == "" {
			p.VIDPID = e.VIDPID
		}
		if p.Manufacturer == "" {
			p.Manufacturer = e.Manufacturer
		}
	}
	return primary
}
