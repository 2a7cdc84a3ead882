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

// This file defines the command behind the video-length analyzer: probe the
// stream, derive the duration from frame count and frame rate, and render
// it as human-readable text.
package commands

import (
	"log/slog"

	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/media"
)

// VideoLength computes and formats the duration of a video file.
type VideoLength struct {
	cor.BaseCommand
	prober Prober
}

// NewVideoLength is the constructor for the VideoLength command.
func NewVideoLength(name string, prober Prober) *VideoLength {
	return &VideoLength{BaseCommand: *cor.NewBaseCommand(name), prober: prober}
}

// IsExecutable requires a classified video file; images pass through the
// chain untouched.
func (v *VideoLength) IsExecutable(context cor.Context) bool {
	if context == nil {
		return false
	}
	mediaFile, ok := context.Get(v.GetInputParam()).(*model.MediaFile)
	return ok && mediaFile.Type == model.MediaTypeVideo
}

// Execute probes the video and formats its duration. An unreadable stream
// or a zero duration yields no output, so no report file is written.
func (v *VideoLength) Execute(context cor.Context) {
	mediaFile := context.Get(v.GetInputParam()).(*model.MediaFile)

	info, err := v.prober.Probe(context.GetContext(), mediaFile.Path)
	if err != nil {
		slog.Error("video probe failed", "command", v.GetName(), "path", mediaFile.Path, "error", err)
		v.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	duration := info.Duration
	if info.FPS > 0 && info.FrameCount > 0 {
		duration = float64(info.FrameCount) / info.FPS
	}
	if duration <= 0 {
		slog.Warn("video has no measurable duration", "command", v.GetName(), "path", mediaFile.Path)
		v.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	v.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(v.GetOutputParam(), media.FormatDuration(duration))
}
