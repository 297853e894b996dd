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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/engdoreis/go-ldp/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgFile = ""
	})

	err := rootCmd.Execute()
	return out.String(), err
}

//nolint:paralleltest // commands share package level state
func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ldpctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("link:\n  port: /dev/ttyACM1\n  max_body: 24\n"), 0o600))

	out, err := execute(t, "config", "--config", path, "--baud", "9600")
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "/dev/ttyACM1", got.Link.Port)
	assert.Equal(t, 24, got.Link.MaxBody)
	assert.Equal(t, 9600, got.Link.Baud)
}

//nolint:paralleltest // commands share package level state
func TestCallCommand_RejectsUnknownRecord(t *testing.T) {
	_, err := execute(t, "call", "cmd9", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
}

//nolint:paralleltest // commands share package level state
func TestVersionCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ldpctl.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	out, err := execute(t, "version", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ldpctl dev")
}
