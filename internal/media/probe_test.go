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

// The prober shells out to ffprobe, so these tests substitute a script that
// prints canned ffprobe JSON. That keeps the whole parse path under test
// without a real media file.
package media_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adscope/ad-media-analysis/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFFprobe writes an executable script that emits the given JSON and
// returns its path.
func fakeFFprobe(t *testing.T, payload string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("script-based ffprobe fake requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffprobe")
	script := "#!/bin/sh\ncat <<'EOF'\n" + payload + "\nEOF\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// TestProbeParsesStreams verifies the prober extracts the frame rate, frame
// count, dimensions, duration, and audio presence out of ffprobe's JSON.
func TestProbeParsesStreams(t *testing.T) {
	probe := media.NewProber(fakeFFprobe(t, `{
		"format": {"duration": "30.53"},
		"streams": [
			{"codec_type": "video", "width": 1920, "height": 1080,
			 "nb_frames": "915", "r_frame_rate": "30000/1001"},
			{"codec_type": "audio"}
		]
	}`))

	info, err := probe.Probe(context.Background(), "/data/spot.mp4")
	require.NoError(t, err)
	assert.InDelta(t, 29.97, info.FPS, 0.001)
	assert.Equal(t, 915, info.FrameCount)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
	assert.InDelta(t, 30.53, info.Duration, 0.0001)
	assert.True(t, info.HasAudio)
}

// TestProbeVideoOnly verifies a silent video reports HasAudio false and the
// zero-value FPS when the rational rate is malformed.
func TestProbeVideoOnly(t *testing.T) {
	probe := media.NewProber(fakeFFprobe(t, `{
		"format": {"duration": "12.0"},
		"streams": [
			{"codec_type": "video", "width": 640, "height": 360,
			 "nb_frames": "", "r_frame_rate": "0/0"}
		]
	}`))

	info, err := probe.Probe(context.Background(), "/data/silent.mp4")
	require.NoError(t, err)
	assert.False(t, info.HasAudio)
	assert.Zero(t, info.FPS)
	assert.Zero(t, info.FrameCount)
}

// TestProbeFailure verifies the error paths: a missing binary and an empty
// path both fail without panicking.
func TestProbeFailure(t *testing.T) {
	probe := media.NewProber(filepath.Join(t.TempDir(), "missing-ffprobe"))
	_, err := probe.Probe(context.Background(), "/data/spot.mp4")
	assert.Error(t, err)

	probe = media.NewProber("")
	_, err = probe.Probe(context.Background(), "")
	assert.Error(t, err)
}
