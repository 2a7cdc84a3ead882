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

// This file defines the command behind the audio-analysis analyzer.
package commands

import (
	"log/slog"

	"github.com/adscope/ad-media-analysis/internal/audio"
	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
)

// SoundReport measures a video's audio characteristics and renders the
// three-line volume/pitch/tempo report.
type SoundReport struct {
	cor.BaseCommand
	analyzer audio.Analyzer
}

// NewSoundReport is the constructor for the SoundReport command.
func NewSoundReport(name string, analyzer audio.Analyzer) *SoundReport {
	return &SoundReport{BaseCommand: *cor.NewBaseCommand(name), analyzer: analyzer}
}

// IsExecutable requires a classified video file.
func (s *SoundReport) IsExecutable(context cor.Context) bool {
	if context == nil {
		return false
	}
	mediaFile, ok := context.Get(s.GetInputParam()).(*model.MediaFile)
	return ok && mediaFile.Type == model.MediaTypeVideo
}

// Execute runs the audio analysis. A failed measurement is logged and
// yields no output, so no report file is written.
func (s *SoundReport) Execute(context cor.Context) {
	mediaFile := context.Get(s.GetInputParam()).(*model.MediaFile)

	result, err := s.analyzer.AnalyzeAudio(context.GetContext(), mediaFile.Path)
	if err != nil {
		slog.Error("audio analysis failed", "command", s.GetName(), "path", mediaFile.Path, "error", err)
		s.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	s.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(s.GetOutputParam(), audio.FormatResult(result))
}
