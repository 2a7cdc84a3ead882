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

package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/adscope/ad-media-analysis/internal/config"
)

// Result holds the averaged audio characteristics of one media file.
type Result struct {
	VolumeDB float64 // Mean volume in decibels, from ffmpeg volumedetect.
	PitchHz  float64 // Average voiced pitch in hertz.
	BPM      float64 // Estimated tempo in beats per minute.
}

// Analyzer measures the audio characteristics of a media file.
type Analyzer interface {
	AnalyzeAudio(ctx context.Context, path string) (*Result, error)
}

// meanVolumePattern matches the volumedetect summary line ffmpeg prints on
// stderr, e.g. "[Parsed_volumedetect_0 @ 0x...] mean_volume: -23.4 dB".
var meanVolumePattern = regexp.MustCompile(`mean_volume:\s*(-?[0-9.]+)\s*dB`)

// ExecAnalyzer derives audio characteristics by shelling out: ffmpeg's
// volumedetect filter for volume, and aubio-style pitch and tempo tools for
// the rest.
type ExecAnalyzer struct {
	ffmpegPath   string
	pitchCommand string
	tempoCommand string
}

// NewExecAnalyzer builds an analyzer from the media and audio config
// sections.
func NewExecAnalyzer(media config.Media, cfg config.AudioAnalyzer) *ExecAnalyzer {
	return &ExecAnalyzer{
		ffmpegPath:   media.FFmpegPath,
		pitchCommand: cfg.PitchCommand,
		tempoCommand: cfg.TempoCommand,
	}
}

// AnalyzeAudio measures average volume, pitch, and tempo for the file. Any
// failed measurement fails the whole analysis; a partial report is worse
// than no report.
func (a *ExecAnalyzer) AnalyzeAudio(ctx context.Context, path string) (*Result, error) {
	volume, err := a.meanVolume(ctx, path)
	if err != nil {
		return nil, err
	}
	pitch, err := a.averagePitch(ctx, path)
	if err != nil {
		return nil, err
	}
	bpm, err := a.tempo(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Result{VolumeDB: volume, PitchHz: pitch, BPM: bpm}, nil
}

// meanVolume runs ffmpeg's volumedetect filter and parses the mean_volume
// line from stderr, where ffmpeg reports filter statistics.
func (a *ExecAnalyzer) meanVolume(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, a.ffmpegPath, "-i", path, "-af", "volumedetect", "-vn", "-f", "null", "-")
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("audio: volumedetect failed: %w", err)
	}

	match := meanVolumePattern.FindStringSubmatch(stderr.String())
	if match == nil {
		return 0, fmt.Errorf("audio: no mean_volume in ffmpeg output")
	}
	return strconv.ParseFloat(match[1], 64)
}

// averagePitch runs the pitch tool, which emits one "time frequency" pair
// per line, and averages the voiced (non-zero) frequencies.
func (a *ExecAnalyzer) averagePitch(ctx context.Context, path string) (float64, error) {
	if a.pitchCommand == "" {
		return 0, fmt.Errorf("audio: no pitch command configured")
	}
	out, err := exec.CommandContext(ctx, a.pitchCommand, path).Output()
	if err != nil {
		return 0, fmt.Errorf("audio: pitch estimation failed: %w", err)
	}

	var sum float64
	var voiced int
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		freq, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || freq <= 0 {
			continue
		}
		sum += freq
		voiced++
	}
	if voiced == 0 {
		return 0, fmt.Errorf("audio: no voiced frames in pitch output")
	}
	return sum / float64(voiced), nil
}

// tempo runs the tempo tool and parses the leading number of its first
// output line ("120.50 bpm").
func (a *ExecAnalyzer) tempo(ctx context.Context, path string) (float64, error) {
	if a.tempoCommand == "" {
		return 0, fmt.Errorf("audio: no tempo command configured")
	}
	out, err := exec.CommandContext(ctx, a.tempoCommand, path).Output()
	if err != nil {
		return 0, fmt.Errorf("audio: tempo estimation failed: %w", err)
	}

	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) == 0 {
		return 0, fmt.Errorf("audio: empty tempo output")
	}
	return strconv.ParseFloat(fields[0], 64)
}

// FormatResult renders the persisted audio-analysis report.
func FormatResult(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Average Volume: %.2f dB\n", r.VolumeDB)
	fmt.Fprintf(&b, "Average Pitch: %.2f Hz\n", r.PitchHz)
	fmt.Fprintf(&b, "Average BPM: %.2f\n", r.BPM)
	return b.String()
}
