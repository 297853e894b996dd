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

// Package logging builds the zap logger used by ldpctl.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/engdoreis/go-ldp/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevelEnvVar controls verbosity when the configuration leaves the level empty.
// Valid values: "debug", "info", "warn", "error".
const LogLevelEnvVar = "LDP_LOG_LEVEL"

// DefaultLevel applies when neither the configuration nor LDP_LOG_LEVEL name a level.
const DefaultLevel = zapcore.WarnLevel

// ParseLevel resolves level, falling back to $LDP_LOG_LEVEL and then DefaultLevel.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		return DefaultLevel, nil
	}

	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return DefaultLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// New creates a logger writing to stderr and, when cfg.File.Filename is set,
// to a rotating file as well.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	ws := zapcore.AddSync(os.Stderr)
	if cfg.File.Filename != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File.Filename,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(lj))
	}

	return zap.New(zapcore.NewCore(newEncoder(cfg.Format), ws, level), zap.AddCaller()), nil
}

func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	if strings.EqualFold(format, "json") {
		return zapcore.NewJSONEncoder(encoderCfg)
	}
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderCfg)
}
