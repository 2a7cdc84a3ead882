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

// This file defines the command behind the sound-extraction analyzer: run
// the stem separator into a per-video directory and build the manifest over
// the produced tracks. The manifest is persisted as manifest.txt inside
// that directory rather than as {stem}.txt, so the command publishes both
// the directory and the file name for the persister.
package commands

import (
	"log/slog"
	"path/filepath"

	"github.com/adscope/ad-media-analysis/internal/audio"
	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/media"
	"github.com/adscope/ad-media-analysis/internal/output"
	"github.com/adscope/ad-media-analysis/internal/report"
)

// StemSeparator splits a video's audio into stem tracks and renders the
// separation manifest.
type StemSeparator struct {
	cor.BaseCommand
	separator    audio.Separator
	resolver     *output.Resolver
	analyzerName string
}

// NewStemSeparator is the constructor for the StemSeparator command.
func NewStemSeparator(name string, separator audio.Separator, resolver *output.Resolver, analyzerName string) *StemSeparator {
	return &StemSeparator{
		BaseCommand:  *cor.NewBaseCommand(name),
		separator:    separator,
		resolver:     resolver,
		analyzerName: analyzerName,
	}
}

// IsExecutable requires a classified video file.
func (s *StemSeparator) IsExecutable(context cor.Context) bool {
	if context == nil {
		return false
	}
	mediaFile, ok := context.Get(s.GetInputParam()).(*model.MediaFile)
	return ok && mediaFile.Type == model.MediaTypeVideo
}

// Execute separates the audio and outputs the manifest text. The default
// output location is {results_root}/{analyzer}/{stem}; an explicit output
// directory is used as-is. A failed separation is logged and yields no
// output.
func (s *StemSeparator) Execute(context cor.Context) {
	mediaFile := context.Get(s.GetInputParam()).(*model.MediaFile)

	dir, ok := context.Get(GetExplicitOutputDirParameterName()).(string)
	if !ok || dir == "" {
		base, err := s.resolver.Resolve("", s.analyzerName)
		if err != nil {
			s.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(s.GetName(), err)
			return
		}
		dir = filepath.Join(base, media.Stem(mediaFile.Path))
	}
	dir, err := s.resolver.Resolve(dir, s.analyzerName)
	if err != nil {
		s.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(s.GetName(), err)
		return
	}

	tracks, err := s.separator.Separate(context.GetContext(), mediaFile.Path, dir)
	if err != nil {
		slog.Error("stem separation failed", "command", s.GetName(), "path", mediaFile.Path, "error", err)
		s.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	manifest := report.BuildManifest(filepath.Base(mediaFile.Path), tracks)

	context.Add(GetOutputDirParameterName(), dir)
	context.Add(GetReportFileNameParameterName(), report.ManifestFileName)
	s.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(s.GetOutputParam(), manifest)
}
