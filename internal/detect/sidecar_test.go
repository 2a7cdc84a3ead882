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

// Package detect_test exercises the sidecar adapter against a real child
// process: the test binary re-executes itself as the sidecar (the standard
// os/exec helper-process trick) and speaks the length-prefixed JSON
// protocol back.
package detect_test

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/adscope/ad-media-analysis/internal/config"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperModeEnv = "GO_SIDECAR_HELPER_MODE"

// helperFactory builds a factory whose sidecar is this test binary running
// TestSidecarHelperProcess in the given mode.
func helperFactory(t *testing.T, kind model.Kind, mode string) *detect.SidecarFactory {
	t.Helper()
	t.Setenv(helperModeEnv, mode)
	return detect.NewSidecarFactory(kind, config.DetectorSidecar{
		Command: os.Args[0],
		Args:    []string{"-test.run=TestSidecarHelperProcess", "--"},
	})
}

// TestSidecarHelperProcess is not a test: it is the sidecar implementation
// the other tests spawn. It serves length-prefixed requests from stdin until
// EOF, answering according to the mode environment variable.
func TestSidecarHelperProcess(t *testing.T) {
	mode := os.Getenv(helperModeEnv)
	if mode == "" {
		return
	}

	respond := func(body []byte) {
		_ = binary.Write(os.Stdout, binary.BigEndian, uint32(len(body)))
		_, _ = os.Stdout.Write(body)
	}

	for {
		header := make([]byte, 4)
		if _, err := io.ReadFull(os.Stdin, header); err != nil {
			os.Exit(0) // stdin closed, normal shutdown
		}
		body := make([]byte, binary.BigEndian.Uint32(header))
		if _, err := io.ReadFull(os.Stdin, body); err != nil {
			os.Exit(1)
		}

		var req struct {
			Kind  string `json:"kind"`
			Frame []byte `json:"frame"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			os.Exit(1)
		}

		switch mode {
		case "pose":
			// Echo the frame length into the landmark coordinates so the
			// parent can verify the frame arrived intact.
			respond([]byte(fmt.Sprintf(
				`{"pose":[{"landmark_id":0,"x":%d,"y":1,"visibility":0.9}]}`, len(req.Frame))))
		case "empty":
			respond([]byte(`{}`))
		case "model-error":
			respond([]byte(`{"error":"no image decoded"}`))
		case "garbage":
			respond([]byte(`this is not json`))
		case "crash":
			fmt.Fprintln(os.Stderr, "sidecar panic: model weights missing")
			os.Exit(3)
		}
	}
}

// TestSidecarAnalyze verifies the round trip: a frame goes out length
// prefixed, detections come back typed under the factory's kind.
func TestSidecarAnalyze(t *testing.T) {
	factory := helperFactory(t, model.KindPose, "pose")
	assert.Equal(t, model.KindPose, factory.Kind())

	detector, err := factory.Open(context.Background())
	require.NoError(t, err)
	defer func() { _ = detector.Close() }()

	frame := []byte("twelve bytes")
	detections, err := detector.Analyze(context.Background(), frame)
	require.NoError(t, err)

	assert.Equal(t, model.KindPose, detections.Kind)
	require.Len(t, detections.Pose, 1)
	assert.Equal(t, len(frame), detections.Pose[0].X)
	assert.InDelta(t, 0.9, detections.Pose[0].Visibility, 0.0001)
}

// TestSidecarMultipleFrames verifies one sidecar process serves a sequence
// of frames, which is how the video path uses it.
func TestSidecarMultipleFrames(t *testing.T) {
	factory := helperFactory(t, model.KindPose, "pose")
	detector, err := factory.Open(context.Background())
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		detections, err := detector.Analyze(context.Background(), make([]byte, i))
		require.NoError(t, err)
		require.Len(t, detections.Pose, 1)
		assert.Equal(t, i, detections.Pose[0].X)
	}
	assert.NoError(t, detector.Close())
}

// TestSidecarEmptyResponse verifies an empty detection set comes back as a
// valid, empty result rather than an error.
func TestSidecarEmptyResponse(t *testing.T) {
	factory := helperFactory(t, model.KindFace, "empty")
	detector, err := factory.Open(context.Background())
	require.NoError(t, err)
	defer func() { _ = detector.Close() }()

	detections, err := detector.Analyze(context.Background(), []byte("frame"))
	require.NoError(t, err)
	assert.Equal(t, model.KindFace, detections.Kind)
	assert.True(t, detections.Empty())
}

// TestSidecarModelError verifies a model-level failure surfaces as an error
// carrying the sidecar's message.
func TestSidecarModelError(t *testing.T) {
	factory := helperFactory(t, model.KindText, "model-error")
	detector, err := factory.Open(context.Background())
	require.NoError(t, err)
	defer func() { _ = detector.Close() }()

	_, err = detector.Analyze(context.Background(), []byte("frame"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image decoded")
}

// TestSidecarMalformedResponse verifies undecodable output is an error, not
// a silent empty result.
func TestSidecarMalformedResponse(t *testing.T) {
	factory := helperFactory(t, model.KindPose, "garbage")
	detector, err := factory.Open(context.Background())
	require.NoError(t, err)
	defer func() { _ = detector.Close() }()

	_, err = detector.Analyze(context.Background(), []byte("frame"))
	assert.Error(t, err)
}

// TestSidecarCrash verifies a sidecar that dies mid-conversation surfaces a
// pipe-level failure instead of hanging or returning an empty result.
func TestSidecarCrash(t *testing.T) {
	factory := helperFactory(t, model.KindPose, "crash")
	detector, err := factory.Open(context.Background())
	require.NoError(t, err)
	defer func() { _ = detector.Close() }()

	_, err = detector.Analyze(context.Background(), []byte("frame"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sidecar failed")
}

// TestSidecarUnconfigured verifies a factory with no command fails to open
// instead of spawning an empty exec.
func TestSidecarUnconfigured(t *testing.T) {
	factory := detect.NewSidecarFactory(model.KindPose, config.DetectorSidecar{})
	_, err := factory.Open(context.Background())
	assert.Error(t, err)
}

// TestSidecarMissingCommand verifies a command that cannot start is a
// resource-acquisition failure at Open time.
func TestSidecarMissingCommand(t *testing.T) {
	factory := detect.NewSidecarFactory(model.KindPose, config.DetectorSidecar{
		Command: "/nonexistent/sidecar-binary",
	})
	_, err := factory.Open(context.Background())
	assert.Error(t, err)
}
