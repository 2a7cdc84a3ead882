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

// Package depth adapts the external depth-map generation service and
// implements the threshold analysis over the generated map.
package depth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/h2non/filetype"

	"github.com/adscope/ad-media-analysis/internal/config"
)

// DefaultThreshold is the grayscale cut between "close" and "far" pixels.
const DefaultThreshold = 128

// Generator produces a depth map for a still image. GenerateDepthMap
// returns a URL for the generated artifact; DownloadDepthMap fetches it to
// a local path.
type Generator interface {
	GenerateDepthMap(ctx context.Context, imagePath string) (string, error)
	DownloadDepthMap(ctx context.Context, url, destPath string) error
}

// HTTPGenerator talks to the depth-map service over HTTP: the image bytes
// are posted to the configured endpoint, which answers with the URL of the
// rendered map.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPGenerator builds a generator from its config section.
func NewHTTPGenerator(cfg config.DepthService) *HTTPGenerator {
	timeout := time.Duration(cfg.TimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPGenerator{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// generateResponse is the service's answer to a generation request.
type generateResponse struct {
	URL string `json:"url"`
}

// GenerateDepthMap posts the image to the service and returns the URL of
// the generated depth map.
func (g *HTTPGenerator) GenerateDepthMap(ctx context.Context, imagePath string) (string, error) {
	if g.endpoint == "" {
		return "", fmt.Errorf("depth: no service endpoint configured")
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}

	contentType := "application/octet-stream"
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("depth: service returned %s", resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("depth: malformed service response: %w", err)
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", fmt.Errorf("depth: service returned no artifact URL")
	}
	return out.URL, nil
}

// DownloadDepthMap fetches the generated map to destPath.
func (g *HTTPGenerator) DownloadDepthMap(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("depth: artifact download returned %s", resp.Status)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AnalyzeDepthMap decodes the depth map and splits its pixels at the
// grayscale threshold. Pixels at or above the threshold count as close to
// the camera; the two percentages always sum to 100.
func AnalyzeDepthMap(depthMapPath string, threshold int) (closePct, farPct float64, err error) {
	f, err := os.Open(depthMapPath)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, 0, fmt.Errorf("depth: failed to decode depth map: %w", err)
	}

	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0, 0, fmt.Errorf("depth: empty depth map")
	}

	closePixels := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if int(gray.Y) >= threshold {
				closePixels++
			}
		}
	}

	closePct = float64(closePixels) / float64(total) * 100
	farPct = float64(total-closePixels) / float64(total) * 100
	return closePct, farPct, nil
}

// FormatReport renders the persisted depth-analysis report.
func FormatReport(threshold int, closePct, farPct float64, depthMapName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Depth Map Analysis (threshold=%d):\n", threshold)
	fmt.Fprintf(&b, "Close to camera: %.2f%%\n", closePct)
	fmt.Fprintf(&b, "Far from camera: %.2f%%\n", farPct)
	fmt.Fprintf(&b, "Depth map image: %s\n", depthMapName)
	return b.String()
}
