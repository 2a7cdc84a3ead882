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

// This file defines the color-theory command. The analysis itself is not
// implemented yet; the command classifies and logs the input, producing no
// report file, so the analyzer can be registered and batched ahead of the
// real implementation.
package commands

import (
	"log/slog"

	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/adscope/ad-media-analysis/internal/media"
)

// ColorTheory logs the classification of the input file.
type ColorTheory struct {
	cor.BaseCommand
}

// NewColorTheory is the constructor for the ColorTheory command.
func NewColorTheory(name string) *ColorTheory {
	return &ColorTheory{BaseCommand: *cor.NewBaseCommand(name)}
}

// IsExecutable requires an input path.
func (c *ColorTheory) IsExecutable(context cor.Context) bool {
	if context == nil {
		return false
	}
	_, ok := context.Get(c.GetInputParam()).(string)
	return ok
}

// Execute classifies the path and logs it. No output is set, so the chain
// produces no report file.
func (c *ColorTheory) Execute(context cor.Context) {
	path := context.Get(c.GetInputParam()).(string)
	mediaType := media.Classify(path)

	slog.Info("processing media file", "path", path, "type", string(mediaType))
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
