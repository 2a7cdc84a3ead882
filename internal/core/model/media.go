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
// file contains the transient media types that flow through an extraction
// call: the classified media file, the per-second frame sample, and the
// separated audio track. None of these are persisted; the only durable
// artifact of a run is the plain-text report.
package model

// MediaType is the tag assigned to a file by the classifier.
type MediaType string

const (
	MediaTypeImage   MediaType = "image"
	MediaTypeVideo   MediaType = "video"
	MediaTypeUnknown MediaType = "unknown"
)

// MediaFile pairs a filesystem path with its derived media type. The type is
// recomputed from the extension on every classification call and is never
// stored anywhere else.
type MediaFile struct {
	Path string
	Type MediaType
}

// FrameSample is one frame emitted by the temporal sampler, tagged with the
// elapsed second it represents. Samples are produced in strictly increasing
// Second order, one per full second of video time, starting at 0. The frame
// itself is an opaque pixel buffer; only the detector sidecars interpret the
// bytes.
type FrameSample struct {
	Second int
	Frame  []byte
}

// Track is one separated audio stem: a name and the artifact path the
// separator wrote it to. Existence and size are read from the filesystem at
// manifest-build time, not stored here.
type Track struct {
	Name string
	Path string
}
