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

package media

import (
	"errors"

	"github.com/adscope/ad-media-analysis/internal/core/model"
)

// ErrInvalidFrameRate is returned when a stream reports fps <= 0. It is a
// failed precondition, not a runtime fault: callers surface it as "no
// result", never as a crash.
var ErrInvalidFrameRate = errors.New("media: frame rate must be positive")

// Sampler walks a frame source at a fixed temporal cadence of one sample per
// elapsed second of video time. The interval is floor(fps): a frame is
// emitted whenever the zero-based running frame number is an exact multiple
// of the interval, tagged with a second counter that starts at 0 and
// increments once per emission. The sampler holds at most one frame and
// never rewinds.
type Sampler struct {
	src         FrameSource
	interval    int
	frameNumber int
	second      int
}

// NewSampler constructs a sampler over src for a stream with the given frame
// rate. fps <= 0 (equivalently, an interval that floors to zero) fails the
// precondition and no samples are ever produced.
func NewSampler(src FrameSource, fps float64) (*Sampler, error) {
	interval := int(fps)
	if interval <= 0 {
		return nil, ErrInvalidFrameRate
	}
	return &Sampler{src: src, interval: interval}, nil
}

// Next advances through the underlying frames until the next cadence point
// and returns that sample. It returns false when the stream is exhausted.
func (s *Sampler) Next() (model.FrameSample, bool) {
	for {
		frame, ok := s.src.Next()
		if !ok {
			return model.FrameSample{}, false
		}
		emit := s.frameNumber%s.interval == 0
		s.frameNumber++
		if emit {
			sample := model.FrameSample{Second: s.second, Frame: frame}
			s.second++
			return sample, true
		}
	}
}

// Err reports any error the underlying source hit during traversal.
func (s *Sampler) Err() error {
	return s.src.Err()
}
