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

// This file implements the process-sidecar detector: the concrete model
// (MediaPipe pose/face-mesh, Tesseract OCR) runs as a child process and the
// adapter speaks a length-prefixed JSON protocol over its stdin/stdout.
// Stderr is buffered so a crashing model's logs survive into the error.
package detect

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/adscope/ad-media-analysis/internal/config"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/media"
)

// sidecarRequest is one analyze call on the wire. The frame bytes marshal as
// base64 per encoding/json's []byte handling.
type sidecarRequest struct {
	Kind  model.Kind `json:"kind"`
	Frame []byte     `json:"frame"`
}

// sidecarResponse is the sidecar's answer. Exactly one variant slice is
// meaningful, selected by the request kind; Error reports a model-level
// failure for this frame.
type sidecarResponse struct {
	Pose  []model.PoseKeypoint    `json:"pose"`
	Faces [][]model.FaceLandmark  `json:"faces"`
	Text  []model.TextBox         `json:"text"`
	Error string                  `json:"error,omitempty"`
}

// SidecarFactory spawns the configured sidecar command once per extraction
// call.
type SidecarFactory struct {
	kind    model.Kind
	command string
	args    []string
}

// NewSidecarFactory builds a factory for one detector kind from its config
// section.
func NewSidecarFactory(kind model.Kind, sidecar config.DetectorSidecar) *SidecarFactory {
	return &SidecarFactory{kind: kind, command: sidecar.Command, args: sidecar.Args}
}

// Kind returns the detector kind this factory opens.
func (f *SidecarFactory) Kind() model.Kind {
	return f.kind
}

// Open starts the sidecar process and wires up its pipes. A factory whose
// command cannot start is a resource-acquisition failure: fatal for the one
// extraction call, with nothing left running.
func (f *SidecarFactory) Open(ctx context.Context) (Detector, error) {
	if f.command == "" {
		return nil, fmt.Errorf("detect: no sidecar configured for kind %q", f.kind)
	}

	cmd := exec.CommandContext(ctx, f.command, f.args...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("detect: failed to create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("detect: failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, fmt.Errorf("detect: sidecar %q failed to start: %w", f.command, err)
	}

	return &sidecarDetector{
		kind:   f.kind,
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

type sidecarDetector struct {
	kind   model.Kind
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr *bytes.Buffer
}

// Analyze sends one frame to the sidecar and decodes its detections. A
// model-level failure for the frame comes back as an error; an empty
// detection set comes back as a valid, empty FrameDetections.
func (d *sidecarDetector) Analyze(ctx context.Context, frame media.Frame) (model.FrameDetections, error) {
	out := model.FrameDetections{Kind: d.kind}

	payload, err := json.Marshal(sidecarRequest{Kind: d.kind, Frame: frame})
	if err != nil {
		return out, err
	}

	body, err := d.communicate(payload)
	if err != nil {
		return out, d.wrapCrash(err)
	}

	var resp sidecarResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return out, fmt.Errorf("detect: malformed sidecar response: %w", err)
	}
	if resp.Error != "" {
		return out, fmt.Errorf("detect: %s model error: %s", d.kind, resp.Error)
	}

	out.Pose = resp.Pose
	out.Faces = resp.Faces
	out.Text = resp.Text
	return out, nil
}

// communicate writes one length-prefixed request and reads one
// length-prefixed response.
func (d *sidecarDetector) communicate(payload []byte) ([]byte, error) {
	if err := binary.Write(d.stdin, binary.BigEndian, uint32(len(payload))); err != nil {
		return nil, err
	}
	if _, err := d.stdin.Write(payload); err != nil {
		return nil, err
	}

	header := make([]byte, 4)
	if _, err := io.ReadFull(d.stdout, header); err != nil {
		return nil, err
	}
	respLen := binary.BigEndian.Uint32(header)
	respBody := make([]byte, respLen)
	_, err := io.ReadFull(d.stdout, respBody)
	return respBody, err
}

// wrapCrash attaches any buffered sidecar stderr to a pipe-level error, so a
// model crash reports its own logs instead of a bare EOF.
func (d *sidecarDetector) wrapCrash(err error) error {
	if d.stderr.Len() > 0 {
		return fmt.Errorf("detect: %s sidecar failed: %w\nsidecar logs:\n%s", d.kind, err, d.stderr.String())
	}
	return fmt.Errorf("detect: %s sidecar failed: %w", d.kind, err)
}

// Close releases the sidecar: stdin closes to signal end of input, then the
// process is reaped.
func (d *sidecarDetector) Close() error {
	d.stdin.Close()
	d.stdout.Close()
	return d.cmd.Wait()
}
