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

// Package report renders detection sets into the plain-text reports this
// system persists. The line formats here are part of the external contract:
// downstream tooling parses the literal "Second {n}:" headers, the sentinel
// strings, and the per-kind field layouts, so rendering is deterministic and
// never reorders, deduplicates, or sorts detections.
package report

import (
	"fmt"
	"strings"

	"github.com/adscope/ad-media-analysis/internal/core/model"
)

// NoFramesProcessed is the whole-report sentinel for a video that decoded
// zero frames.
const NoFramesProcessed = "No frames processed"

// Renderer supplies the kind-specific pieces of a report: the sentinel text
// substituted when nothing was detected, and the per-detection line layouts
// for image and per-second video groups.
type Renderer interface {
	Kind() model.Kind
	Sentinel() string
	RenderImage(d model.FrameDetections) []string
	RenderSecond(second int, d model.FrameDetections) []string
}

// ForKind returns the renderer for a detector kind.
func ForKind(kind model.Kind) Renderer {
	switch kind {
	case model.KindPose:
		return poseRenderer{}
	case model.KindFace:
		return faceRenderer{}
	case model.KindText:
		return textRenderer{}
	}
	return nil
}

// BuildImage renders a single-image detection set. An empty set yields
// exactly the kind's sentinel string with no headers.
func BuildImage(r Renderer, d model.FrameDetections) string {
	if d.Empty() {
		return r.Sentinel()
	}
	return strings.Join(r.RenderImage(d), "\n")
}

// BuildVideo renders per-second groups in the order given, which the sampler
// guarantees is ascending with no gaps. Zero groups collapse the whole report
// to the NoFramesProcessed sentinel.
func BuildVideo(r Renderer, groups []model.SecondDetections) string {
	if len(groups) == 0 {
		return NoFramesProcessed
	}
	lines := make([]string, 0, len(groups)*4)
	for _, g := range groups {
		lines = append(lines, r.RenderSecond(g.Second, g.Detections)...)
	}
	return strings.Join(lines, "\n")
}

// --- pose ---

type poseRenderer struct{}

func (poseRenderer) Kind() model.Kind { return model.KindPose }

func (poseRenderer) Sentinel() string { return "No pose detected" }

func (poseRenderer) RenderImage(d model.FrameDetections) []string {
	lines := []string{"Body Pose:"}
	for _, kp := range d.Pose {
		lines = append(lines, fmt.Sprintf("  Landmark %d: (%d, %d) | Visibility: %.3f",
			kp.LandmarkID, kp.X, kp.Y, kp.Visibility))
	}
	return lines
}

func (r poseRenderer) RenderSecond(second int, d model.FrameDetections) []string {
	if d.Empty() {
		return []string{fmt.Sprintf("Second %d: %s", second, r.Sentinel())}
	}
	lines := []string{fmt.Sprintf("Second %d:", second), "  Body Pose:"}
	for _, kp := range d.Pose {
		lines = append(lines, fmt.Sprintf("    Landmark %d: (%d, %d) | Visibility: %.3f",
			kp.LandmarkID, kp.X, kp.Y, kp.Visibility))
	}
	return lines
}

// --- face mesh ---

type faceRenderer struct{}

func (faceRenderer) Kind() model.Kind { return model.KindFace }

func (faceRenderer) Sentinel() string { return "No faces detected" }

func (faceRenderer) RenderImage(d model.FrameDetections) []string {
	var lines []string
	for i, face := range d.Faces {
		lines = append(lines, fmt.Sprintf("Face %d:", i+1))
		for _, lm := range face {
			lines = append(lines, fmt.Sprintf("  Landmark %d: (%d, %d)", lm.LandmarkID, lm.X, lm.Y))
		}
	}
	return lines
}

func (r faceRenderer) RenderSecond(second int, d model.FrameDetections) []string {
	if d.Empty() {
		return []string{fmt.Sprintf("Second %d: %s", second, r.Sentinel())}
	}
	lines := []string{fmt.Sprintf("Second %d:", second)}
	for i, face := range d.Faces {
		lines = append(lines, fmt.Sprintf("  Face %d:", i+1))
		for _, lm := range face {
			lines = append(lines, fmt.Sprintf("    Landmark %d: (%d, %d)", lm.LandmarkID, lm.X, lm.Y))
		}
	}
	return lines
}

// --- text boxes ---

type textRenderer struct{}

func (textRenderer) Kind() model.Kind { return model.KindText }

func (textRenderer) Sentinel() string { return "No text detected" }

func (textRenderer) RenderImage(d model.FrameDetections) []string {
	lines := []string{fmt.Sprintf("Total text boxes detected: %d", len(d.Text)), ""}
	for i, box := range d.Text {
		lines = append(lines,
			fmt.Sprintf("Text Box %d:", i+1),
			fmt.Sprintf("  Text: %s", box.Text),
			fmt.Sprintf("  Position: (x=%d, y=%d)", box.Left, box.Top),
			fmt.Sprintf("  Size: (width=%d, height=%d)", box.Width, box.Height),
			fmt.Sprintf("  Block: %d, Paragraph: %d, Line: %d, Word: %d",
				box.BlockNum, box.ParNum, box.LineNum, box.WordNum),
			"")
	}
	return lines
}

func (r textRenderer) RenderSecond(second int, d model.FrameDetections) []string {
	if d.Empty() {
		return []string{fmt.Sprintf("Second %d: %s", second, r.Sentinel()), ""}
	}
	lines := []string{
		fmt.Sprintf("Second %d:", second),
		fmt.Sprintf("  Total text boxes: %d", len(d.Text)),
	}
	for i, box := range d.Text {
		lines = append(lines,
			fmt.Sprintf("  Text Box %d:", i+1),
			fmt.Sprintf("    Text: %s", box.Text),
			fmt.Sprintf("    Position: (x=%d, y=%d)", box.Left, box.Top),
			fmt.Sprintf("    Size: (width=%d, height=%d)", box.Width, box.Height))
	}
	lines = append(lines, "")
	return lines
}
