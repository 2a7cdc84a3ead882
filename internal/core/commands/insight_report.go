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

// This file defines the command behind the LLM-insight analyzer. All model
// and parsing failures are caught here: the error is logged, the counter
// incremented, and the run yields no report rather than aborting a batch.
package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"

	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/insight"
)

// InsightReport runs the LLM analysis of an advertisement image and renders
// the structured insight as the persisted text report.
type InsightReport struct {
	cor.BaseCommand
	analyzer *insight.ImageAnalyzer
}

// NewInsightReport is the constructor for the InsightReport command.
func NewInsightReport(name string, analyzer *insight.ImageAnalyzer) *InsightReport {
	return &InsightReport{BaseCommand: *cor.NewBaseCommand(name), analyzer: analyzer}
}

// IsExecutable requires a classified image file; the insight model analyzes
// stills only.
func (i *InsightReport) IsExecutable(context cor.Context) bool {
	if context == nil {
		return false
	}
	mediaFile, ok := context.Get(i.GetInputParam()).(*model.MediaFile)
	return ok && mediaFile.Type == model.MediaTypeImage
}

// Execute analyzes the image and outputs the formatted insight text.
func (i *InsightReport) Execute(context cor.Context) {
	mediaFile := context.Get(i.GetInputParam()).(*model.MediaFile)
	ctx := context.GetContext()

	data, err := os.ReadFile(mediaFile.Path)
	if err != nil {
		slog.Error("failed to read image", "command", i.GetName(), "path", mediaFile.Path, "error", err)
		i.GetErrorCounter().Add(ctx, 1)
		return
	}

	mimeType := "image/jpeg"
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		mimeType = kind.MIME.Value
	}

	adInsight, err := i.analyzer.AnalyzeImage(ctx, data, mimeType)
	if err != nil {
		slog.Error("insight analysis failed", "command", i.GetName(), "path", mediaFile.Path, "error", err)
		i.GetErrorCounter().Add(ctx, 1)
		return
	}

	i.GetSuccessCounter().Add(ctx, 1)
	context.Add(i.GetOutputParam(), insight.FormatInsight(adInsight, filepath.Base(mediaFile.Path)))
}
