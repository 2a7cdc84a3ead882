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

// Package media groups the helpers every analyzer shares: file
// classification, duration formatting, stream probing, frame decoding, and
// the per-second temporal sampler.
package media

import (
	"path/filepath"
	"strings"

	"github.com/adscope/ad-media-analysis/internal/core/model"
)

// imageExtensions and videoExtensions are the fixed extension sets the
// classifier matches against. Anything else is unknown.
var (
	imageExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
		".webp": true, ".svg": true, ".tiff": true, ".ico": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".flv": true,
		".wmv": true, ".webm": true, ".m4v": true, ".mpeg": true, ".mpg": true,
	}
)

// Classify maps a file path to a media type from its extension alone,
// case-insensitively. The file is never opened and need not exist; a path
// with no suffix, or a suffix outside both sets, classifies as unknown.
func Classify(path string) model.MediaType {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		return model.MediaTypeImage
	case videoExtensions[ext]:
		return model.MediaTypeVideo
	default:
		return model.MediaTypeUnknown
	}
}

// Stem returns the file name of path with its final extension removed. Output
// reports are always named "{stem}.txt"; inputs sharing a stem overwrite each
// other silently.
func Stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
