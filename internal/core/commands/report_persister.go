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

// This file defines the terminal command of every analyzer chain: it
// resolves the output directory and writes the report text produced
// upstream. When an earlier command already resolved a directory (to place
// artifacts next to the report), the persister reuses it.
package commands

import (
	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/output"
)

// ReportPersister writes the report text to the analyzer's output location
// and publishes the written path as the chain result.
type ReportPersister struct {
	cor.BaseCommand
	resolver     *output.Resolver
	analyzerName string
}

// NewReportPersister is the constructor for the ReportPersister command.
// analyzerName selects the default results subdirectory.
func NewReportPersister(name string, resolver *output.Resolver, analyzerName string) *ReportPersister {
	return &ReportPersister{
		BaseCommand:  *cor.NewBaseCommand(name),
		resolver:     resolver,
		analyzerName: analyzerName,
	}
}

// IsExecutable requires report text as input and the classified media file
// for naming the report.
func (p *ReportPersister) IsExecutable(context cor.Context) bool {
	if context == nil {
		return false
	}
	if _, ok := context.Get(p.GetInputParam()).(string); !ok {
		return false
	}
	_, ok := context.Get(GetMediaFileParameterName()).(*model.MediaFile)
	return ok
}

// Execute writes the report. Persistence failures are real errors: the run
// produced a report it could not save, so the error is recorded on the
// context.
func (p *ReportPersister) Execute(context cor.Context) {
	text := context.Get(p.GetInputParam()).(string)
	mediaFile := context.Get(GetMediaFileParameterName()).(*model.MediaFile)

	dir, ok := context.Get(GetOutputDirParameterName()).(string)
	if !ok {
		explicitDir, _ := context.Get(GetExplicitOutputDirParameterName()).(string)
		var err error
		dir, err = p.resolver.Resolve(explicitDir, p.analyzerName)
		if err != nil {
			p.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(p.GetName(), err)
			return
		}
	}

	var written string
	var err error
	if fileName, ok := context.Get(GetReportFileNameParameterName()).(string); ok {
		written, err = p.resolver.WriteNamed(dir, fileName, text)
	} else {
		written, err = p.resolver.WriteReport(dir, mediaFile.Path, text)
	}
	if err != nil {
		p.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(p.GetName(), err)
		return
	}

	p.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(p.GetOutputParam(), written)
}
