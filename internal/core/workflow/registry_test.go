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

package workflow_test

import (
	"testing"

	"github.com/adscope/ad-media-analysis/internal/config"
	"github.com/adscope/ad-media-analysis/internal/core/workflow"
	test "github.com/adscope/ad-media-analysis/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRegistryMinimalConfig verifies that with no detector sidecars and
// no generative model, only the analyzers with built-in collaborators are
// registered.
func TestNewRegistryMinimalConfig(t *testing.T) {
	registry := workflow.NewRegistry(config.NewConfig(), nil)

	assert.Equal(t,
		[]string{
			workflow.FeatureColor,
			workflow.FeatureDepth,
			workflow.FeatureLength,
			workflow.FeatureSound,
			workflow.FeatureStems,
		},
		registry.Features())

	assert.Nil(t, registry.Get(workflow.FeaturePose))
	assert.Nil(t, registry.Get(workflow.FeatureInsights))
	assert.Nil(t, registry.Get("unknown"))
}

// TestNewRegistryWithDetectors verifies each configured sidecar registers
// its analyzer, and that the analyzer reports its feature name.
func TestNewRegistryWithDetectors(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Detectors["pose"] = config.DetectorSidecar{Command: "python3", Args: []string{"pose_worker.py"}}
	cfg.Detectors["text"] = config.DetectorSidecar{Command: "python3", Args: []string{"text_worker.py"}}

	registry := workflow.NewRegistry(cfg, nil)

	pose := registry.Get(workflow.FeaturePose)
	require.NotNil(t, pose)
	assert.Equal(t, workflow.FeaturePose, pose.Feature())

	assert.NotNil(t, registry.Get(workflow.FeatureText))
	// The face sidecar was not configured, so no face analyzer exists.
	assert.Nil(t, registry.Get(workflow.FeatureFace))
}

// TestNewRegistryFromCheckedInConfig loads the repository's test
// configuration files and verifies every analyzer they configure comes up.
// The insight analyzer stays out because no generative model client is
// provided.
func TestNewRegistryFromCheckedInConfig(t *testing.T) {
	cfg := test.GetConfig()
	require.NotNil(t, cfg)

	registry := workflow.NewRegistry(cfg, nil)

	assert.Equal(t,
		[]string{
			workflow.FeatureColor,
			workflow.FeatureDepth,
			workflow.FeatureFace,
			workflow.FeatureLength,
			workflow.FeaturePose,
			workflow.FeatureSound,
			workflow.FeatureStems,
			workflow.FeatureText,
		},
		registry.Features())
}

// TestResultsDir verifies the feature-to-directory mapping, including the
// empty mapping for the report-less color analyzer.
func TestResultsDir(t *testing.T) {
	assert.Equal(t, "body_keypoints", workflow.ResultsDir(workflow.FeaturePose))
	assert.Equal(t, "face_keypoints", workflow.ResultsDir(workflow.FeatureFace))
	assert.Equal(t, "text_boxes", workflow.ResultsDir(workflow.FeatureText))
	assert.Equal(t, "video_length", workflow.ResultsDir(workflow.FeatureLength))
	assert.Equal(t, "audio_analysis", workflow.ResultsDir(workflow.FeatureSound))
	assert.Equal(t, "sound_extraction", workflow.ResultsDir(workflow.FeatureStems))
	assert.Equal(t, "depth_maps", workflow.ResultsDir(workflow.FeatureDepth))
	assert.Equal(t, "llm_insights", workflow.ResultsDir(workflow.FeatureInsights))
	assert.Equal(t, "", workflow.ResultsDir(workflow.FeatureColor))
	assert.Equal(t, "", workflow.ResultsDir("unknown"))
}
