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

// Package audio adapts the external audio tooling: the stem separator that
// splits a soundtrack into instrument tracks and the analyzer that measures
// volume, pitch, and tempo.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/adscope/ad-media-analysis/internal/config"
	"github.com/adscope/ad-media-analysis/internal/core/model"
)

// Separator splits a media file's audio into stem tracks written under
// outputDir. The returned slice lists every configured track in report
// order, whether or not the separator produced it; callers decide how to
// treat missing artifacts.
type Separator interface {
	Separate(ctx context.Context, inputPath, outputDir string) ([]model.Track, error)
}

// ExecSeparator runs a separation tool (demucs or compatible) as a child
// process.
type ExecSeparator struct {
	command string
	args    []string
	tracks  []string
}

// NewExecSeparator builds a separator from its config section.
func NewExecSeparator(cfg config.Separator) *ExecSeparator {
	return &ExecSeparator{command: cfg.Command, args: cfg.Args, tracks: cfg.Tracks}
}

// Separate invokes the separation command with the input path and output
// directory appended to the configured arguments. Track artifacts are
// expected as {track}.wav inside outputDir.
func (s *ExecSeparator) Separate(ctx context.Context, inputPath, outputDir string) ([]model.Track, error) {
	if s.command == "" {
		return nil, fmt.Errorf("audio: no separator command configured")
	}

	args := make([]string, 0, len(s.args)+2)
	args = append(args, s.args...)
	args = append(args, inputPath, outputDir)

	cmd := exec.CommandContext(ctx, s.command, args...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("audio: separator failed: %w: %s", err, stderr.String())
	}

	tracks := make([]model.Track, 0, len(s.tracks))
	for _, name := range s.tracks {
		tracks = append(tracks, model.Track{
			Name: name,
			Path: filepath.Join(outputDir, name+".wav"),
		})
	}
	return tracks, nil
}
