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

// This file constructs the generative model clients from configuration. It
// is the single place where model settings (temperature, token limits,
// safety, grounding tools) turn into configured, rate-limited handles the
// rest of the application can use.
package insight

import (
	"context"

	"google.golang.org/genai"

	"github.com/adscope/ad-media-analysis/internal/config"
)

// DefaultSafetySettings disables category blocking. Advertisement creatives
// routinely trip overcautious content filters, so analysis runs unblocked
// and the structured output is reviewed downstream.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// Clients holds the initialized generative AI client and the configured,
// rate-limited model handles keyed by their logical config names.
type Clients struct {
	GenAIClient *genai.Client
	Models      map[string]*QuotaAwareGenerativeAIModel
}

// NewClients creates the generative AI client and builds one quota-aware
// model per configured insight model. Authentication comes from the
// GEMINI_API_KEY environment variable, which the client reads itself.
func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	models := make(map[string]*QuotaAwareGenerativeAIModel)
	for key, values := range cfg.InsightModels {
		genCfg := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			Tools:             []*genai.Tool{},
		}
		if values.EnableWebSearch {
			genCfg.Tools = append(genCfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		}
		models[key] = NewQuotaAwareModel(genCfg, values.Model, gc.Models, values.RateLimit)
	}

	return &Clients{GenAIClient: gc, Models: models}, nil
}
