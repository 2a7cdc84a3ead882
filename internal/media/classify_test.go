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

// Package media_test contains unit tests for the shared media helpers.
// This file tests the extension-based file classifier and the report stem
// derivation.
package media_test

import (
	"testing"

	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/media"
	"github.com/stretchr/testify/assert"
)

// TestClassify verifies the extension-to-type mapping. Classification is
// purely lexical: the paths here do not exist on disk and must not need to.
func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want model.MediaType
	}{
		{"ad.png", model.MediaTypeImage},
		{"ad.jpg", model.MediaTypeImage},
		{"ad.jpeg", model.MediaTypeImage},
		{"ad.gif", model.MediaTypeImage},
		{"ad.bmp", model.MediaTypeImage},
		{"ad.webp", model.MediaTypeImage},
		{"ad.svg", model.MediaTypeImage},
		{"ad.tiff", model.MediaTypeImage},
		{"ad.ico", model.MediaTypeImage},
		{"spot.mp4", model.MediaTypeVideo},
		{"spot.avi", model.MediaTypeVideo},
		{"spot.mov", model.MediaTypeVideo},
		{"spot.mkv", model.MediaTypeVideo},
		{"spot.flv", model.MediaTypeVideo},
		{"spot.wmv", model.MediaTypeVideo},
		{"spot.webm", model.MediaTypeVideo},
		{"spot.m4v", model.MediaTypeVideo},
		{"spot.mpeg", model.MediaTypeVideo},
		{"spot.mpg", model.MediaTypeVideo},
		{"notes.txt", model.MediaTypeUnknown},
		{"archive.zip", model.MediaTypeUnknown},
		{"no-extension", model.MediaTypeUnknown},
		{"", model.MediaTypeUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, media.Classify(tc.path), "path %q", tc.path)
	}
}

// TestClassifyIsCaseInsensitive verifies that extension matching folds case,
// so camera exports with upper-case suffixes classify the same as their
// lower-case twins.
func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, model.MediaTypeImage, media.Classify("SCAN.PNG"))
	assert.Equal(t, model.MediaTypeImage, media.Classify("photo.JPeG"))
	assert.Equal(t, model.MediaTypeVideo, media.Classify("CLIP.MP4"))
	assert.Equal(t, model.MediaTypeVideo, media.Classify("clip.MoV"))
}

// TestClassifyUsesFinalExtensionOnly verifies that only the last suffix
// participates in classification, and that directory components never do.
func TestClassifyUsesFinalExtensionOnly(t *testing.T) {
	assert.Equal(t, model.MediaTypeVideo, media.Classify("backup.png.mp4"))
	assert.Equal(t, model.MediaTypeUnknown, media.Classify("clip.mp4.bak"))
	assert.Equal(t, model.MediaTypeImage, media.Classify("/srv/videos.mp4/frame.jpg"))
}

// TestStem verifies the report stem derivation: base name with the final
// extension removed.
func TestStem(t *testing.T) {
	assert.Equal(t, "spot", media.Stem("/data/incoming/spot.mp4"))
	assert.Equal(t, "spot.1080p", media.Stem("spot.1080p.mp4"))
	assert.Equal(t, "README", media.Stem("README"))
	assert.Equal(t, "ad", media.Stem("ad.PNG"))
}
