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

// This file defines the command behind the depth-map analyzer: generate a
// depth map through the external service, download it next to the report
// as {stem}_depth.png, and run the threshold analysis over it. Any failure
// along the way is logged and the run yields no report.
package commands

import (
	"log/slog"
	"path/filepath"

	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/depth"
	"github.com/adscope/ad-media-analysis/internal/media"
	"github.com/adscope/ad-media-analysis/internal/output"
)

// DepthReport generates, downloads, and analyzes a depth map for a still
// image.
type DepthReport struct {
	cor.BaseCommand
	generator    depth.Generator
	resolver     *output.Resolver
	analyzerName string
	threshold    int
}

// NewDepthReport is the constructor for the DepthReport command.
func NewDepthReport(name string, generator depth.Generator, resolver *output.Resolver, analyzerName string, threshold int) *DepthReport {
	if threshold <= 0 {
		threshold = depth.DefaultThreshold
	}
	return &DepthReport{
		BaseCommand:  *cor.NewBaseCommand(name),
		generator:    generator,
		resolver:     resolver,
		analyzerName: analyzerName,
		threshold:    threshold,
	}
}

// IsExecutable requires a classified image file; the depth service only
// accepts stills.
func (d *DepthReport) IsExecutable(context cor.Context) bool {
	if context == nil {
		return false
	}
	mediaFile, ok := context.Get(d.GetInputParam()).(*model.MediaFile)
	return ok && mediaFile.Type == model.MediaTypeImage
}

// Execute produces the depth artifact and the analysis text. The artifact
// lives in the resolved output directory, which is published so the
// persister writes the report next to it.
func (d *DepthReport) Execute(context cor.Context) {
	mediaFile := context.Get(d.GetInputParam()).(*model.MediaFile)
	ctx := context.GetContext()

	explicitDir, _ := context.Get(GetExplicitOutputDirParameterName()).(string)
	dir, err := d.resolver.Resolve(explicitDir, d.analyzerName)
	if err != nil {
		d.GetErrorCounter().Add(ctx, 1)
		context.AddError(d.GetName(), err)
		return
	}

	url, err := d.generator.GenerateDepthMap(ctx, mediaFile.Path)
	if err != nil {
		slog.Error("depth map generation failed", "command", d.GetName(), "path", mediaFile.Path, "error", err)
		d.GetErrorCounter().Add(ctx, 1)
		return
	}

	depthMapPath := filepath.Join(dir, media.Stem(mediaFile.Path)+"_depth.png")
	if err := d.generator.DownloadDepthMap(ctx, url, depthMapPath); err != nil {
		slog.Error("depth map download failed", "command", d.GetName(), "url", url, "error", err)
		d.GetErrorCounter().Add(ctx, 1)
		return
	}

	closePct, farPct, err := depth.AnalyzeDepthMap(depthMapPath, d.threshold)
	if err != nil {
		slog.Error("depth map analysis failed", "command", d.GetName(), "path", depthMapPath, "error", err)
		d.GetErrorCounter().Add(ctx, 1)
		return
	}

	text := depth.FormatReport(d.threshold, closePct, farPct, filepath.Base(depthMapPath))
	context.Add(GetOutputDirParameterName(), dir)
	d.GetSuccessCounter().Add(ctx, 1)
	context.Add(d.GetOutputParam(), text)
}
