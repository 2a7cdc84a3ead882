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

// Package detect is the boundary between the extraction framework and the
// detection models. The framework only requires the capability "analyze one
// frame, return zero or more detections"; how a detector computes that is
// its own business. Determinism is not assumed, so detector output is never
// cached across frames. An empty detection set is a valid result, distinct
// from a detector error.
package detect

import (
	"context"

	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/media"
)

// Detector analyzes frames for one detector kind. Implementations hold a
// model resource; Close releases it and must be called on every exit path of
// the extraction call that opened it.
type Detector interface {
	Analyze(ctx context.Context, frame media.Frame) (model.FrameDetections, error)
	Close() error
}

// Factory opens a detector for one extraction call. The detector's lifetime
// is scoped to that call: one image, or one full video traversal.
type Factory interface {
	Kind() model.Kind
	Open(ctx context.Context) (Detector, error)
}
