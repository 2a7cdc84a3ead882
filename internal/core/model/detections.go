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

// Package model defines the core data structures for the application. This
// file contains the detection variants returned by the detector sidecars.
// A detection set is polymorphic over the detector kind: exactly one of the
// variant slices is populated, selected by Kind.
package model

// Kind identifies a detector capability.
type Kind string

const (
	KindPose Kind = "pose"
	KindFace Kind = "face"
	KindText Kind = "text"
)

// PoseKeypoint is a single body-pose landmark detected in a frame.
// Visibility is in [0,1] and is rendered to three decimal places.
type PoseKeypoint struct {
	LandmarkID int     `json:"landmark_id"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Visibility float64 `json:"visibility"`
}

// FaceLandmark is a single face-mesh landmark. Landmarks are grouped per
// detected face; the group index in a report is 1-based.
type FaceLandmark struct {
	LandmarkID int `json:"landmark_id"`
	X          int `json:"x"`
	Y          int `json:"y"`
}

// TextBox is one OCR word box with its layout coordinates.
type TextBox struct {
	Text     string `json:"text"`
	Left     int    `json:"left"`
	Top      int    `json:"top"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	BlockNum int    `json:"block_num"`
	ParNum   int    `json:"par_num"`
	LineNum  int    `json:"line_num"`
	WordNum  int    `json:"word_num"`
}

// FrameDetections is the tagged result of analyzing one frame. An empty set
// is a valid, reportable outcome, distinct from a detector error.
type FrameDetections struct {
	Kind  Kind
	Pose  []PoseKeypoint
	Faces [][]FaceLandmark
	Text  []TextBox
}

// Empty reports whether the set contains no detections of its kind.
func (d FrameDetections) Empty() bool {
	switch d.Kind {
	case KindPose:
		return len(d.Pose) == 0
	case KindFace:
		return len(d.Faces) == 0
	case KindText:
		return len(d.Text) == 0
	}
	return true
}

// SecondDetections pairs a sampled second with the detections found in its
// frame. Reports render these groups in ascending Second order.
type SecondDetections struct {
	Second     int
	Detections FrameDetections
}
