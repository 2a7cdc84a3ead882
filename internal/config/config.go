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

// Package config defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings
// for the media tooling (ffmpeg/ffprobe), the detector sidecars, the audio
// separation and depth-map collaborators, and the GenAI insight model.
//
// Structs:
//   - Media: paths to the ffmpeg and ffprobe binaries.
//   - DetectorSidecar: the external model process behind one detector kind.
//   - Separator: the audio stem-separation command and its track names.
//   - DepthService: the HTTP endpoint that generates depth maps.
//   - GenAiModel: configuration for the LLM used by the insight analyzer.
//   - Output: the root directory for persisted reports.
//   - Config: the top-level struct that aggregates all other sections.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with
//     empty maps and working defaults for the media tooling.
package config

// Media holds the paths to the external media binaries. Empty values fall
// back to resolution through the system PATH.
type Media struct {
	FFmpegPath  string `toml:"ffmpeg_path"`  // The path to the ffmpeg executable.
	FFprobePath string `toml:"ffprobe_path"` // The path to the ffprobe executable.
}

// DetectorSidecar describes the external model process that implements one
// detector kind (pose, face-mesh, OCR). The command is spawned once per
// extraction call and released when the call returns.
type DetectorSidecar struct {
	Command string   `toml:"command"` // The executable to spawn (e.g., "python3").
	Args    []string `toml:"args"`    // Arguments passed to the executable.
}

// Separator configures the audio stem-separation collaborator.
type Separator struct {
	Command string   `toml:"command"` // The separation executable (e.g., "demucs").
	Args    []string `toml:"args"`    // Extra arguments placed before input/output paths.
	Tracks  []string `toml:"tracks"`  // Track names the separator produces, in report order.
}

// AudioAnalyzer configures the audio-characteristics collaborator used by the
// sound analyzer (average volume, pitch, and tempo).
type AudioAnalyzer struct {
	PitchCommand string `toml:"pitch_command"` // The pitch-estimation executable (e.g., "aubiopitch").
	TempoCommand string `toml:"tempo_command"` // The tempo-estimation executable (e.g., "aubiotempo").
}

// DepthService configures the HTTP service that generates depth maps for
// still images.
type DepthService struct {
	Endpoint         string `toml:"endpoint"`           // The URL that accepts an image and returns a depth-map URL.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // Request timeout for generation and download.
}

// GenAiModel represents the configuration for the generative model used by
// the LLM insight analyzer.
type GenAiModel struct {
	Model              string  `toml:"model"`               // The model name (e.g., "gemini-2.0-flash").
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the model.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter.
	TopP               float32 `toml:"top_p"`               // The top_p parameter.
	TopK               float32 `toml:"top_k"`               // The top_k parameter.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of output tokens.
	EnableWebSearch    bool    `toml:"enable_web_search"`   // Whether to ground the analysis with web search.
	RateLimit          int     `toml:"rate_limit"`          // Requests per second allowed against the model.
}

// Output holds the report persistence settings.
type Output struct {
	ResultsRoot string `toml:"results_root"` // Root directory for reports; defaults to "data/results".
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other sections.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name string `toml:"name"` // The name of the application.
		Port int    `toml:"port"` // The port the REST server binds to.
	} `toml:"application"`
	Media         Media                      `toml:"media"`          // Media tooling configuration.
	Detectors     map[string]DetectorSidecar `toml:"detectors"`      // Detector sidecars keyed by kind name ("pose", "face", "text").
	Separator     Separator                  `toml:"separator"`      // Audio stem-separation configuration.
	AudioAnalyzer AudioAnalyzer              `toml:"audio_analyzer"` // Audio-characteristics configuration.
	DepthService  DepthService               `toml:"depth_service"`  // Depth-map service configuration.
	InsightModels map[string]GenAiModel      `toml:"insight_models"` // GenAI models keyed by a logical name (e.g., "ad-insights").
	Output        Output                     `toml:"output"`         // Report persistence configuration.
}

// NewConfig is a constructor function that creates a new, initialized Config
// instance. The maps must be initialized up front so the TOML loader can
// populate them without nil checks.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with defaults applied.
func NewConfig() *Config {
	cfg := &Config{
		Detectors:     make(map[string]DetectorSidecar),
		InsightModels: make(map[string]GenAiModel),
	}
	cfg.Media.FFmpegPath = "ffmpeg"
	cfg.Media.FFprobePath = "ffprobe"
	cfg.Output.ResultsRoot = "data/results"
	return cfg
}
