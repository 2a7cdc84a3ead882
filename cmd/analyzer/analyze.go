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

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	analyzeFeature string
	analyzeInput   string
	analyzeOutput  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analyzer against one media file",
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer := analyzers.Get(analyzeFeature)
		if analyzer == nil {
			return fmt.Errorf("unknown feature %q, available: %s",
				analyzeFeature, strings.Join(analyzers.Features(), ", "))
		}

		report, err := analyzer.Run(cmd.Context(), analyzeInput, analyzeOutput)
		if err != nil {
			return err
		}
		if report == "" {
			fmt.Println("no report produced")
			return nil
		}
		fmt.Println(report)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFeature, "feature", "f", "", "Feature to extract (pose, face, text, length, sound, stems, depth, insights, color)")
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to the media file")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output directory (default: data/results/{analyzer})")

	_ = analyzeCmd.MarkFlagRequired("feature")
	_ = analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}
