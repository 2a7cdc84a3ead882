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

// Package workflow defines the high-level analyzer orchestrations, combining
// commands into coherent pipelines. This file implements the generic
// analyzer: one named chain over classify, extract, and persist, plus the
// Run entry point shared by the CLI and the REST API.
package workflow

import (
	goctx "context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/adscope/ad-media-analysis/internal/core/commands"
	"github.com/adscope/ad-media-analysis/internal/core/cor"
)

var logger = otelslog.NewLogger("github.com/adscope/ad-media-analysis/internal/core/workflow")

// Analyzer is one feature analyzer: a named command chain that takes a media
// path and produces at most one report file.
type Analyzer struct {
	cor.BaseCommand
	feature string
	chain   cor.Chain
}

// NewAnalyzer wraps a chain as a runnable analyzer for the named feature.
func NewAnalyzer(feature string, chain cor.Chain) *Analyzer {
	return &Analyzer{
		BaseCommand: *cor.NewBaseCommand(feature + "-analyzer"),
		feature:     feature,
		chain:       chain,
	}
}

// Feature returns the analyzer's feature name ("pose", "length", ...).
func (a *Analyzer) Feature() string {
	return a.feature
}

// Execute runs the underlying chain. Analyzer is itself a Command, so
// analyzers compose into larger chains if needed.
func (a *Analyzer) Execute(context cor.Context) {
	a.chain.Execute(context)
}

// Run executes the analyzer for one media file. It returns the path of the
// written report, or an empty path when the run legitimately produced no
// report (unknown media type, no result from a collaborator). Only
// persistence-level failures surface as errors.
func (a *Analyzer) Run(ctx goctx.Context, inputPath, outputDir string) (string, error) {
	runID := uuid.NewString()
	logger.InfoContext(ctx, "starting analyzer run",
		"run_id", runID,
		"feature", a.feature,
		"path", inputPath)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	defer chainCtx.Close()

	chainCtx.Add(cor.CtxIn, inputPath)
	if outputDir != "" {
		chainCtx.Add(commands.GetExplicitOutputDirParameterName(), outputDir)
	}

	a.chain.Execute(chainCtx)

	if chainCtx.HasErrors() {
		var parts []string
		for name, err := range chainCtx.GetErrors() {
			parts = append(parts, fmt.Sprintf("%s: %v", name, err))
		}
		return "", fmt.Errorf("analyzer %s failed: %s", a.feature, strings.Join(parts, "; "))
	}

	// The chain pipes its final output into CtxIn after the last command.
	written, _ := chainCtx.Get(cor.CtxIn).(string)
	logger.InfoContext(ctx, "analyzer run finished",
		"run_id", runID,
		"feature", a.feature,
		"report", written)
	return written, nil
}
