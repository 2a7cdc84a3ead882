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

// This file builds the audio-separation manifest: the aggregate report
// listing each separated stem, its artifact, and its size. Like the frame
// reports, the exact layout is an external contract, down to the 60-char
// separators and the MB-only size unit.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/adscope/ad-media-analysis/internal/core/model"
)

const (
	separatorLine = "============================================================" // 60 chars
	bytesPerMB    = 1024 * 1024
)

// ManifestFileName is the fixed name of the manifest inside each separation
// output directory.
const ManifestFileName = "manifest.txt"

// BuildManifest renders the separation manifest for sourceName over the given
// tracks, in the order provided. A track whose artifact is missing from disk
// is silently omitted from the body, but still counts toward the footer
// total, which always equals len(tracks). Sizes render in MB with exactly two
// decimals regardless of magnitude.
func BuildManifest(sourceName string, tracks []model.Track) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Audio Separation Results for: %s\n", sourceName)
	fmt.Fprintf(&b, "%s\n\n", separatorLine)

	for _, track := range tracks {
		info, err := os.Stat(track.Path)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %s (%s)\n", capitalize(track.Name), filepath.Base(track.Path), FormatSizeMB(info.Size()))
	}

	fmt.Fprintf(&b, "\n%s\n", separatorLine)
	fmt.Fprintf(&b, "Total tracks: %d\n", len(tracks))
	return b.String()
}

// FormatSizeMB renders a byte count in MB with two decimals. There is no unit
// promotion: a 5 GB artifact renders as "5120.00 MB".
func FormatSizeMB(sizeBytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(sizeBytes)/bytesPerMB)
}

// capitalize upper-cases the first rune only, matching the track-name
// capitalization in the manifest body.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
