// Copyright 2025 AdScope, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config_test covers the hierarchical TOML loader: a base file sets
// defaults, an environment-specific file overlays them, and environment
// variables select the directory and runtime.
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adscope/ad-media-analysis/internal/config"
	"github.com/zeebo/assert"
)

const baseToml = `
[application]
name = "ad-media-analysis"
port = 8080

[media]
ffmpeg_path = "/usr/bin/ffmpeg"
ffprobe_path = "/usr/bin/ffprobe"

[output]
results_root = "data/results"

[detectors.pose]
command = "python3"
args = ["models/pose_worker.py"]

[separator]
command = "demucs-split"
tracks = ["drums", "bass", "vocals"]

[insight_models.ad-insights]
model = "gemini-2.0-flash"
temperature = 1.0
max_tokens = 8192
rate_limit = 1
`

const overlayToml = `
[application]
port = 18080

[output]
results_root = "data/test-results"
`

// writeConfigDir materializes the base and overlay files in a temp directory
// and points the loader environment variables at it.
func writeConfigDir(t *testing.T, runtime string) string {
	t.Helper()
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env.toml"), []byte(baseToml), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env."+runtime+".toml"), []byte(overlayToml), 0o644))
	t.Setenv(config.EnvConfigFilePrefix, dir)
	return dir
}

// TestLoadBaseAndOverlay verifies the overlay wins only for the keys it
// sets; everything else keeps its base value.
func TestLoadBaseAndOverlay(t *testing.T) {
	writeConfigDir(t, "test")
	t.Setenv(config.EnvConfigRuntime, "test")

	cfg := config.NewConfig()
	config.Load(cfg)

	// Overlaid values.
	assert.Equal(t, 18080, cfg.Application.Port)
	assert.Equal(t, "data/test-results", cfg.Output.ResultsRoot)

	// Base values that survive the overlay.
	assert.Equal(t, "ad-media-analysis", cfg.Application.Name)
	assert.Equal(t, "/usr/bin/ffmpeg", cfg.Media.FFmpegPath)
	assert.Equal(t, "/usr/bin/ffprobe", cfg.Media.FFprobePath)

	pose, ok := cfg.Detectors["pose"]
	assert.True(t, ok)
	assert.Equal(t, "python3", pose.Command)
	assert.DeepEqual(t, []string{"models/pose_worker.py"}, pose.Args)

	assert.Equal(t, "demucs-split", cfg.Separator.Command)
	assert.DeepEqual(t, []string{"drums", "bass", "vocals"}, cfg.Separator.Tracks)

	insight, ok := cfg.InsightModels["ad-insights"]
	assert.True(t, ok)
	assert.Equal(t, "gemini-2.0-flash", insight.Model)
	assert.Equal(t, int32(8192), insight.MaxTokens)
	assert.Equal(t, 1, insight.RateLimit)
}

// TestLoadDefaultRuntime verifies the runtime defaults to "test" when the
// environment variable is unset, so tests never pick up a production
// overlay by accident.
func TestLoadDefaultRuntime(t *testing.T) {
	writeConfigDir(t, config.DefaultRuntime)
	t.Setenv(config.EnvConfigRuntime, "")

	cfg := config.NewConfig()
	config.Load(cfg)
	assert.Equal(t, 18080, cfg.Application.Port)
}

// TestLoadIgnoresMissingOverlay verifies a runtime with no overlay file
// loads the base configuration alone.
func TestLoadIgnoresMissingOverlay(t *testing.T) {
	writeConfigDir(t, "test")
	t.Setenv(config.EnvConfigRuntime, "staging")

	cfg := config.NewConfig()
	config.Load(cfg)
	assert.Equal(t, 8080, cfg.Application.Port)
	assert.Equal(t, "data/results", cfg.Output.ResultsRoot)
}

// TestLoadMissingFilesKeepsDefaults verifies that with no configuration
// files at all, the constructor defaults survive Load untouched.
func TestLoadMissingFilesKeepsDefaults(t *testing.T) {
	t.Setenv(config.EnvConfigFilePrefix, t.TempDir())
	t.Setenv(config.EnvConfigRuntime, "test")

	cfg := config.NewConfig()
	config.Load(cfg)
	assert.Equal(t, "ffmpeg", cfg.Media.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.Media.FFprobePath)
	assert.Equal(t, "data/results", cfg.Output.ResultsRoot)
	assert.Equal(t, 0, len(cfg.Detectors))
}
