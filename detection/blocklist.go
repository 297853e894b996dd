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

package detection

import (
	"path/filepath"
	"strings"
)

// DefaultBlocklist returns USB adapters that should never be offered as
// link ports. Format: VID:PID in hexadecimal (case-insensitive).
func DefaultBlocklist() []string {
	// No adapter is known to misbehave yet; entries look like "1A86:7523".
	return []string{}
}

// IsBlocked checks if a USB device is in the blocklist.
func IsBlocked(vidpid string, blocklist []string) bool {
	vidpid = strings.ToUpper(strings.TrimSpace(vidpid))
	if vidpid == "" {
		return false
	}

	for _, blocked := range blocklist {
		if vidpid == strings.ToUpper(strings.TrimSpace(blocked)) {
			return true
		}
	}
	return false
}

// ParseVIDPID extracts VID:PID from the descriptor formats reported by the
// different platforms:
//
//	"VID:1234 PID:5678"
//	"USB\VID_1234&PID_5678"
//	"vendor=1234 product=5678"
//	"1234:5678"
func ParseVIDPID(descriptor string) string {
	descriptor = strings.ToUpper(strings.TrimSpace(descriptor))

	vid := valueAfter(descriptor, "VID:", "VID_", "VID=", "VENDOR=")
	pid := valueAfter(descriptor, "PID:", "PID_", "PID=", "PRODUCT=")
	if vid != "" && pid != "" {
		return vid + ":" + pid
	}

	if parts := strings.Split(descriptor, ":"); len(parts) == 2 && isHex(parts[0]) && isHex(parts[1]) {
		return descriptor
	}
	return ""
}

// valueAfter returns the hex digits following the first marker found.
func valueAfter(s string, markers ...string) string {
	for _, marker := range markers {
		if idx := strings.Index(s, marker); idx >= 0 {
			return leadingHex(s[idx+len(marker):])
		}
	}
	return ""
}

func leadingHex(s string) string {
	end := 0
	for end < len(s) && isHexDigit(rune(s[end])) {
		end++
	}
	return s[:end]
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F') || (r >= 'a' && r <= 'f')
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

// IsPathIgnored checks if a port path is in the ignore list. Paths are
// compared after cleaning and case folding, so "COM3" matches "com3".
func IsPathIgnored(portPath string, ignorePaths []string) bool {
	if portPath == "" {
		return false
	}

	normalized := normalizePath(portPath)
	for _, ignored := range ignorePaths {
		if ignored != "" && normalizePath(ignored) == normalized {
			return true
		}
	}
	return false
}

func normalizePath(path string) string {
	return strings.ToLower(filepath.Clean(path))
}
