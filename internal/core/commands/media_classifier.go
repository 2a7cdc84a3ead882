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

// This file defines the command that classifies the input path as image or
// video. It is the first command in every analyzer chain; a file of unknown
// type stops the chain quietly by never setting an output.
package commands

import (
	"log/slog"

	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/media"
)

// MediaClassifier turns an input path into a classified MediaFile.
type MediaClassifier struct {
	cor.BaseCommand
}

// NewMediaClassifier is the constructor for the MediaClassifier command.
func NewMediaClassifier(name string) *MediaClassifier {
	return &MediaClassifier{BaseCommand: *cor.NewBaseCommand(name)}
}

// Execute classifies the input path by extension. Known types flow
// downstream as a MediaFile; an unknown type is logged and produces no
// output, so the rest of the chain is skipped without error.
func (c *MediaClassifier) Execute(context cor.Context) {
	path := context.Get(c.GetInputParam()).(string)
	mediaType := media.Classify(path)

	if mediaType == model.MediaTypeUnknown {
		slog.Warn("unsupported media type, skipping", "path", path)
		c.GetSuccessCounter().Add(context.GetContext(), 1)
		return
	}

	mediaFile := &model.MediaFile{Path: path, Type: mediaType}
	context.Add(GetMediaFileParameterName(), mediaFile)
	context.Add(c.GetOutputParam(), mediaFile)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
