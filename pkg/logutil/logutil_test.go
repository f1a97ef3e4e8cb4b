// Copyright 2023 Veckit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/veckit/veckit/pkg/common/vcerr"
)

func TestGetGlobalLogger(t *testing.T) {
	logger := GetGlobalLogger()
	require.NotNil(t, logger)
	Info("logutil test", zap.Int("n", 1))
	Debugf("logutil test %d", 2)
}

func TestSetupLogger(t *testing.T) {
	SetupLogger(&LogConfig{Level: "debug", Format: "json"})
	require.True(t, GetGlobalLogger().Core().Enabled(zapcore.DebugLevel))

	SetupLogger(&LogConfig{Level: "error", Format: "console"})
	require.False(t, GetGlobalLogger().Core().Enabled(zapcore.InfoLevel))

	// bad level strings fall back to info
	SetupLogger(&LogConfig{Level: "no-such-level"})
	require.True(t, GetGlobalLogger().Core().Enabled(zapcore.InfoLevel))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.toml")
	content := `
level = "debug"
format = "json"
filename = "veckit.log"
max-size = 128
max-days = 7
max-backups = 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Level)
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, "veckit.log", cfg.Filename)
	require.Equal(t, 128, cfg.MaxSize)
	require.Equal(t, 7, cfg.MaxDays)
	require.Equal(t, 3, cfg.MaxBackups)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, vcerr.IsVcErrCode(err, vcerr.ErrInvalidInput), "got %v", err)
}
