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

// This file defines the statistics endpoint: a per-analyzer count of the
// reports persisted under the results root.
package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adscope/ad-media-analysis/internal/core/workflow"
)

// Dashboard configures the statistics routes.
//
// GET /stats returns, for each registered analyzer, how many reports exist
// in its results directory.
func Dashboard(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("", func(c *gin.Context) {
			counts := make(map[string]int)
			for _, feature := range state.analyzers.Features() {
				dir := workflow.ResultsDir(feature)
				if dir == "" {
					continue
				}
				counts[feature] = countReports(
					filepath.Join(state.config.Output.ResultsRoot, dir),
					feature == workflow.FeatureStems)
			}
			c.JSON(http.StatusOK, gin.H{"reports": counts})
		})
	}
}

// countReports counts persisted reports under dir. Most analyzers write
// flat {stem}.txt files; the stems analyzer writes one manifest.txt per
// video subdirectory.
func countReports(dir string, perVideoManifest bool) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if perVideoManifest {
			if entry.IsDir() {
				if _, err := os.Stat(filepath.Join(dir, entry.Name(), "manifest.txt")); err == nil {
					count++
				}
			}
			continue
		}
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
			count++
		}
	}
	return count
}
