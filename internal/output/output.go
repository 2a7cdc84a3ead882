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

// Package output resolves where reports are written and persists them.
// Every analyzer shares the same convention: an explicit directory wins;
// otherwise reports land under {results_root}/{analyzer_name}. Writes are
// whole-file, so a report is either absent or fully written, never partial.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adscope/ad-media-analysis/internal/media"
)

// DefaultResultsRoot is the convention root used when no results root is
// configured.
const DefaultResultsRoot = "data/results"

// Resolver computes output directories and writes report files.
type Resolver struct {
	resultsRoot string
}

// NewResolver returns a Resolver rooted at resultsRoot, falling back to the
// convention path when empty.
func NewResolver(resultsRoot string) *Resolver {
	if resultsRoot == "" {
		resultsRoot = DefaultResultsRoot
	}
	return &Resolver{resultsRoot: resultsRoot}
}

// Resolve returns the directory reports for analyzerName go to, creating it
// (and all missing ancestors) first. A non-empty explicitDir is used
// verbatim. Creation is idempotent; an existing directory is never an error.
func (r *Resolver) Resolve(explicitDir, analyzerName string) (string, error) {
	dir := explicitDir
	if dir == "" {
		dir = filepath.Join(r.resultsRoot, analyzerName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create output directory %s: %w", dir, err)
	}
	return dir, nil
}

// WriteReport persists a report for inputPath into dir as "{stem}.txt" and
// returns the written path. Two inputs sharing a stem overwrite silently.
func (r *Resolver) WriteReport(dir, inputPath, text string) (string, error) {
	outputFile := filepath.Join(dir, media.Stem(inputPath)+".txt")
	if err := os.WriteFile(outputFile, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("could not write report %s: %w", outputFile, err)
	}
	return outputFile, nil
}

// WriteNamed persists text into dir under an exact file name. The audio
// separation manifest uses this for its fixed "manifest.txt" name.
func (r *Resolver) WriteNamed(dir, fileName, text string) (string, error) {
	outputFile := filepath.Join(dir, fileName)
	if err := os.WriteFile(outputFile, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("could not write %s: %w", outputFile, err)
	}
	return outputFile, nil
}
