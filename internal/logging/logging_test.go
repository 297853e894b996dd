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

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/engdoreis/go-ldp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

//nolint:paralleltest // uses t.Setenv
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		env     string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "explicit", level: "debug", want: zapcore.DebugLevel},
		{name: "case folded", level: "ERROR", want: zapcore.ErrorLevel},
		{name: "warning alias", level: "warning", want: zapcore.WarnLevel},
		{name: "from environment", env: "info", want: zapcore.InfoLevel},
		{name: "explicit beats environment", level: "error", env: "debug", want: zapcore.ErrorLevel},
		{name: "default", want: DefaultLevel},
		{name: "unknown", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LogLevelEnvVar, tt.env)

			got, err := ParseLevel(tt.level)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ldpctl.log")
	logger, err := New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		File:   config.LumberjackConfig{Filename: path, MaxSizeMB: 1},
	})
	require.NoError(t, err)

	logger.Info("session opened")
	logger.Debug("not written")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session opened"`)
	assert.NotContains(t, string(data), "not written")
}

func TestNew_Console(t *testing.T) {
	t.Parallel()

	logger, err := New(config.LoggingConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = New(config.LoggingConfig{Level: "verbose"})
	require.Error(t, err)
}
