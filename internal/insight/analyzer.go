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

// This file implements the ad-image analyzer itself: it prompts the model
// with the creative and a few-shot example, parses the structured JSON the
// model returns, and renders the human-readable report text.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"

	"github.com/adscope/ad-media-analysis/internal/core/model"
)

// analysisPrompt asks for a single JSON object matching the AdInsight
// schema. The example document anchors the structure.
const analysisPrompt = `You are an advertising creative analyst. Examine the attached
advertisement image and produce a single JSON object describing it. Identify the
brand, the headline, any other legible on-screen text, the apparent target
demographics, the mood, the color scheme, the call to action, and the prominent
subjects, then give a one-paragraph effectiveness recommendation.

Respond with JSON only, no prose, following exactly the structure of this example:

{{.EXAMPLE_JSON}}

Omit any field you cannot determine from the image.`

const meterNamespace = "github.com/adscope/ad-media-analysis"

// ImageAnalyzer runs one-shot structured analysis of advertisement images
// against a quota-aware generative model.
type ImageAnalyzer struct {
	model              *QuotaAwareGenerativeAIModel
	promptTemplate     *template.Template
	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
	retryCounter       metric.Int64Counter
}

// NewImageAnalyzer builds an analyzer around the given model handle.
func NewImageAnalyzer(m *QuotaAwareGenerativeAIModel) *ImageAnalyzer {
	meter := otel.Meter(meterNamespace)
	inputCounter, _ := meter.Int64Counter("insight.gemini.token.input")
	outputCounter, _ := meter.Int64Counter("insight.gemini.token.output")
	retryCounter, _ := meter.Int64Counter("insight.gemini.retry")

	return &ImageAnalyzer{
		model:              m,
		promptTemplate:     template.Must(template.New("ad-insight").Parse(analysisPrompt)),
		inputTokenCounter:  inputCounter,
		outputTokenCounter: outputCounter,
		retryCounter:       retryCounter,
	}
}

// AnalyzeImage sends the image bytes and the analysis prompt to the model
// and decodes the structured insight it returns.
func (a *ImageAnalyzer) AnalyzeImage(ctx context.Context, imageBytes []byte, mimeType string) (*model.AdInsight, error) {
	exampleJSON, err := json.MarshalIndent(model.GetExampleInsight(), "", "  ")
	if err != nil {
		return nil, err
	}

	vocabulary := map[string]string{"EXAMPLE_JSON": string(exampleJSON)}
	var doc bytes.Buffer
	if err := a.promptTemplate.Execute(&doc, vocabulary); err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: doc.String()},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageBytes}},
			},
			Role: "user",
		},
	}

	raw, err := GenerateMultiModalResponse(ctx, a.inputTokenCounter, a.outputTokenCounter, a.retryCounter, a.model, contents)
	if err != nil {
		return nil, err
	}

	insight := &model.AdInsight{}
	if err := json.Unmarshal([]byte(raw), insight); err != nil {
		return nil, fmt.Errorf("insight: model returned malformed JSON: %w", err)
	}
	return insight, nil
}

// FormatInsight renders the structured insight as the persisted text report.
// Fields the model omitted are skipped rather than printed empty.
func FormatInsight(insight *model.AdInsight, sourceName string) string {
	lines := []string{
		fmt.Sprintf("Ad Creative Insights for: %s", sourceName),
		strings.Repeat("=", 60),
		"",
	}

	appendField := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", label, value))
		}
	}
	appendField("Brand", insight.Brand)
	appendField("Headline", insight.Headline)
	appendField("On-Screen Text", strings.Join(insight.OnScreenText, "; "))
	appendField("Demographics", insight.Demographics)
	appendField("Mood", insight.Mood)
	appendField("Color Scheme", insight.ColorScheme)
	appendField("Call To Action", insight.CallToAction)
	appendField("Subjects", strings.Join(insight.Subjects, "; "))

	if insight.Recommendation != "" {
		lines = append(lines, "", "Recommendation:", insight.Recommendation)
	}

	return strings.Join(lines, "\n")
}
