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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/adscope/ad-media-analysis/internal/core/model"
	"github.com/adscope/ad-media-analysis/internal/media"
)

var (
	batchDir      string
	batchFeatures []string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run analyzers over every media file in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		features := batchFeatures
		if len(features) == 0 {
			features = analyzers.Features()
		}
		for _, feature := range features {
			if analyzers.Get(feature) == nil {
				return fmt.Errorf("unknown feature %q, available: %s",
					feature, strings.Join(analyzers.Features(), ", "))
			}
		}

		var files []string
		err := filepath.WalkDir(batchDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if media.Classify(path) != model.MediaTypeUnknown {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("no media files found")
			return nil
		}

		bar := progressbar.Default(int64(len(files) * len(features)))
		failures := 0
		for _, file := range files {
			for _, feature := range features {
				if _, err := analyzers.Get(feature).Run(cmd.Context(), file, ""); err != nil {
					// Keep going; one broken file must not sink the batch.
					fmt.Fprintf(os.Stderr, "%s %s: %v\n", feature, file, err)
					failures++
				}
				_ = bar.Add(1)
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d runs failed", failures, len(files)*len(features))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory to scan for media files")
	batchCmd.Flags().StringSliceVar(&batchFeatures, "features", nil, "Features to run (default: all registered)")

	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}
