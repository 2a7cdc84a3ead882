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

// This file builds the full analyzer set from configuration. Each analyzer
// gets its own chain; features whose collaborators are not configured are
// left out of the registry rather than registered broken.
package workflow

import (
	"sort"

	"github.com/adscope/ad-media-analysis/internal/audio"
	"github.com/adscope/ad-media-analysis/internal/config"
	"github.com/adscope/ad-media-analysis/internal/core/commands"
	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/depth"
	"github.com/adscope/ad-media-analysis/internal/detect"
	"github.com/adscope/ad-media-analysis/internal/insight"
	"github.com/adscope/ad-media-analysis/internal/media"
	"github.com/adscope/ad-media-analysis/internal/output"
)

// Feature names accepted by the CLI and the REST API.
const (
	FeaturePose     = "pose"
	FeatureFace     = "face"
	FeatureText     = "text"
	FeatureLength   = "length"
	FeatureSound    = "sound"
	FeatureStems    = "stems"
	FeatureDepth    = "depth"
	FeatureInsights = "insights"
	FeatureColor    = "color"
)

// Results subdirectories, one per analyzer.
const (
	DirBodyKeypoints   = "body_keypoints"
	DirFaceKeypoints   = "face_keypoints"
	DirTextBoxes       = "text_boxes"
	DirVideoLength     = "video_length"
	DirAudioAnalysis   = "audio_analysis"
	DirSoundExtraction = "sound_extraction"
	DirDepthMaps       = "depth_maps"
	DirLLMInsights     = "llm_insights"
)

// DefaultInsightModelName is the config key of the model the insight
// analyzer uses.
const DefaultInsightModelName = "ad-insights"

// ResultsDir maps a feature name to its results subdirectory. Features that
// never persist a report (color) map to the empty string.
func ResultsDir(feature string) string {
	switch feature {
	case FeaturePose:
		return DirBodyKeypoints
	case FeatureFace:
		return DirFaceKeypoints
	case FeatureText:
		return DirTextBoxes
	case FeatureLength:
		return DirVideoLength
	case FeatureSound:
		return DirAudioAnalysis
	case FeatureStems:
		return DirSoundExtraction
	case FeatureDepth:
		return DirDepthMaps
	case FeatureInsights:
		return DirLLMInsights
	default:
		return ""
	}
}

// Registry holds the constructed analyzers keyed by feature name.
type Registry struct {
	analyzers map[string]*Analyzer
}

// Get returns the analyzer for a feature, or nil.
func (r *Registry) Get(feature string) *Analyzer {
	return r.analyzers[feature]
}

// Features returns the registered feature names in sorted order.
func (r *Registry) Features() []string {
	out := make([]string, 0, len(r.analyzers))
	for feature := range r.analyzers {
		out = append(out, feature)
	}
	sort.Strings(out)
	return out
}

// NewRegistry constructs every analyzer the configuration supports.
// insightClients may be nil when no generative model is available; the
// insight analyzer is then omitted.
func NewRegistry(cfg *config.Config, insightClients *insight.Clients) *Registry {
	prober := media.NewProber(cfg.Media.FFprobePath)
	opener := media.NewFFmpegFrameOpener(cfg.Media.FFmpegPath)
	resolver := output.NewResolver(cfg.Output.ResultsRoot)

	analyzers := make(map[string]*Analyzer)

	register := func(feature string, chain cor.Chain) {
		analyzers[feature] = NewAnalyzer(feature, chain)
	}

	// Detector-backed analyzers share one chain shape; only the sidecar
	// factory and the results directory differ.
	detectorFeature := func(feature string, kind model.Kind, configKey, dir string) {
		sidecar, ok := cfg.Detectors[configKey]
		if !ok {
			return
		}
		chain := cor.NewBaseChain(feature + "-chain")
		chain.AddCommand(commands.NewMediaClassifier(feature + "-classifier"))
		chain.AddCommand(commands.NewFeatureExtractor(
			feature+"-extractor",
			detect.NewSidecarFactory(kind, sidecar),
			prober,
			opener))
		chain.AddCommand(commands.NewReportPersister(feature+"-persister", resolver, dir))
		register(feature, chain)
	}

	detectorFeature(FeaturePose, model.KindPose, "pose", DirBodyKeypoints)
	detectorFeature(FeatureFace, model.KindFace, "face", DirFaceKeypoints)
	detectorFeature(FeatureText, model.KindText, "text", DirTextBoxes)

	lengthChain := cor.NewBaseChain("length-chain")
	lengthChain.AddCommand(commands.NewMediaClassifier("length-classifier"))
	lengthChain.AddCommand(commands.NewVideoLength("length-prober", prober))
	lengthChain.AddCommand(commands.NewReportPersister("length-persister", resolver, DirVideoLength))
	register(FeatureLength, lengthChain)

	soundChain := cor.NewBaseChain("sound-chain")
	soundChain.AddCommand(commands.NewMediaClassifier("sound-classifier"))
	soundChain.AddCommand(commands.NewSoundReport("sound-analyzer",
		audio.NewExecAnalyzer(cfg.Media, cfg.AudioAnalyzer)))
	soundChain.AddCommand(commands.NewReportPersister("sound-persister", resolver, DirAudioAnalysis))
	register(FeatureSound, soundChain)

	stemsChain := cor.NewBaseChain("stems-chain")
	stemsChain.AddCommand(commands.NewMediaClassifier("stems-classifier"))
	stemsChain.AddCommand(commands.NewStemSeparator("stems-separator",
		audio.NewExecSeparator(cfg.Separator), resolver, DirSoundExtraction))
	stemsChain.AddCommand(commands.NewReportPersister("stems-persister", resolver, DirSoundExtraction))
	register(FeatureStems, stemsChain)

	depthChain := cor.NewBaseChain("depth-chain")
	depthChain.AddCommand(commands.NewMediaClassifier("depth-classifier"))
	depthChain.AddCommand(commands.NewDepthReport("depth-generator",
		depth.NewHTTPGenerator(cfg.DepthService), resolver, DirDepthMaps, depth.DefaultThreshold))
	depthChain.AddCommand(commands.NewReportPersister("depth-persister", resolver, DirDepthMaps))
	register(FeatureDepth, depthChain)

	if insightClients != nil {
		if insightModel, ok := insightClients.Models[DefaultInsightModelName]; ok {
			insightsChain := cor.NewBaseChain("insights-chain")
			insightsChain.AddCommand(commands.NewMediaClassifier("insights-classifier"))
			insightsChain.AddCommand(commands.NewInsightReport("insights-analyzer",
				insight.NewImageAnalyzer(insightModel)))
			insightsChain.AddCommand(commands.NewReportPersister("insights-persister", resolver, DirLLMInsights))
			register(FeatureInsights, insightsChain)
		}
	}

	colorChain := cor.NewBaseChain("color-chain")
	colorChain.AddCommand(commands.NewColorTheory("color-classifier"))
	register(FeatureColor, colorChain)

	return &Registry{analyzers: analyzers}
}
