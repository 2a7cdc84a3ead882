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

// This file defines the feature extraction command shared by the pose, face
// mesh, and text box analyzers. The detector kind is injected through a
// factory; the command itself only knows the traversal:
//
//   - Image: the file's bytes are one frame; a single detector pass renders
//     the image report.
//   - Video: the stream is probed for its frame rate, decoded frame by
//     frame, and temporally sampled to roughly one frame per second of
//     content. Each sampled frame is analyzed and grouped under its second.
//
// A detector failure on one frame degrades that second to an empty
// detection set; a failure to probe or open the stream produces no report
// at all.
package commands

import (
	goctx "context"
	"log/slog"
	"os"

	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/detect"
	"github.com/adscope/ad-media-analysis/internal/media"
	"github.com/adscope/ad-media-analysis/internal/report"
)

// Prober supplies stream metadata for a video path. media.Prober is the
// production implementation; tests substitute fixed metadata.
type Prober interface {
	Probe(ctx goctx.Context, filePath string) (*media.StreamInfo, error)
}

// FeatureExtractor runs one detector kind over an image or video and
// renders the persisted report text.
type FeatureExtractor struct {
	cor.BaseCommand
	factory detect.Factory
	prober  Prober
	opener  media.FrameOpener
}

// NewFeatureExtractor is the constructor for the FeatureExtractor command.
func NewFeatureExtractor(
	name string,
	factory detect.Factory,
	prober Prober,
	opener media.FrameOpener) *FeatureExtractor {
	return &FeatureExtractor{
		BaseCommand: *cor.NewBaseCommand(name),
		factory:     factory,
		prober:      prober,
		opener:      opener,
	}
}

// IsExecutable requires a classified media file as input.
func (f *FeatureExtractor) IsExecutable(context cor.Context) bool {
	if context == nil {
		return false
	}
	_, ok := context.Get(f.GetInputParam()).(*model.MediaFile)
	return ok
}

// Execute analyzes the media file and writes the report text to the output
// parameter. Extraction failures are logged and leave the output unset, so
// the persister is skipped and the run yields no report file.
func (f *FeatureExtractor) Execute(context cor.Context) {
	mediaFile := context.Get(f.GetInputParam()).(*model.MediaFile)
	renderer := report.ForKind(f.factory.Kind())

	var text string
	var err error
	switch mediaFile.Type {
	case model.MediaTypeImage:
		text, err = f.extractImage(context.GetContext(), mediaFile.Path, renderer)
	case model.MediaTypeVideo:
		text, err = f.extractVideo(context.GetContext(), mediaFile.Path, renderer)
	default:
		return
	}

	if err != nil {
		slog.Error("feature extraction failed",
			"command", f.GetName(),
			"path", mediaFile.Path,
			"kind", string(f.factory.Kind()),
			"error", err)
		f.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	f.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(f.GetOutputParam(), text)
}

// extractImage analyzes the whole file as one frame.
func (f *FeatureExtractor) extractImage(ctx goctx.Context, path string, renderer report.Renderer) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	detector, err := f.factory.Open(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = detector.Close() }()

	detections, err := detector.Analyze(ctx, data)
	if err != nil {
		return "", err
	}
	return report.BuildImage(renderer, detections), nil
}

// extractVideo probes the stream, samples roughly one frame per second, and
// groups the detections per sampled second. A stream with no usable frame
// rate, or one that cannot be opened, yields an error; a stream that opens
// but decodes zero frames yields the no-frames report.
func (f *FeatureExtractor) extractVideo(ctx goctx.Context, path string, renderer report.Renderer) (string, error) {
	info, err := f.prober.Probe(ctx, path)
	if err != nil {
		return "", err
	}

	source, err := f.opener.OpenFrames(ctx, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = source.Close() }()

	sampler, err := media.NewSampler(source, info.FPS)
	if err != nil {
		return "", err
	}

	detector, err := f.factory.Open(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = detector.Close() }()

	var groups []model.SecondDetections
	for {
		sample, ok := sampler.Next()
		if !ok {
			break
		}
		detections, err := detector.Analyze(ctx, sample.Frame)
		if err != nil {
			// One bad frame degrades its second, not the whole report.
			slog.Warn("frame analysis failed",
				"command", f.GetName(),
				"path", path,
				"second", sample.Second,
				"error", err)
			detections = model.FrameDetections{Kind: f.factory.Kind()}
		}
		groups = append(groups, model.SecondDetections{Second: sample.Second, Detections: detections})
	}
	if err := sampler.Err(); err != nil && len(groups) == 0 {
		return "", err
	}

	return report.BuildVideo(renderer, groups), nil
}
