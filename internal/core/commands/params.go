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

// Package commands provides the concrete implementations of the chain of
// responsibility Command interface. This file defines the shared context
// parameter names that let commands exchange data outside the primary
// CtxIn/CtxOut pipe.
package commands

// GetMediaFileParameterName returns the context key under which the
// classifier publishes the classified media file for later commands.
func GetMediaFileParameterName() string {
	return "__MEDIA_FILE__"
}

// GetExplicitOutputDirParameterName returns the context key for a
// caller-supplied output directory that overrides the resolver default.
func GetExplicitOutputDirParameterName() string {
	return "__EXPLICIT_OUTPUT_DIR__"
}

// GetOutputDirParameterName returns the context key for the resolved output
// directory, so a command that already placed artifacts there can hand the
// same directory to the persister.
func GetOutputDirParameterName() string {
	return "__OUTPUT_DIR__"
}

// GetReportFileNameParameterName returns the context key for an explicit
// report file name. When unset, the persister names the report after the
// input file's stem.
func GetReportFileNameParameterName() string {
	return "__REPORT_FILE_NAME__"
}
