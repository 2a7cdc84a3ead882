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

// Package model defines the core data structures for the application. This
// file holds the structured insight object produced by the LLM image
// analyzer, plus the example instance used for few-shot prompting.
package model

// AdInsight is the structured result of an LLM analysis of one advertisement
// image. The JSON tags match the schema the model is prompted to emit.
type AdInsight struct {
	Brand          string   `json:"brand,omitempty"`           // The brand or advertiser, when identifiable.
	Headline       string   `json:"headline,omitempty"`        // The dominant headline or tagline text.
	OnScreenText   []string `json:"on_screen_text,omitempty"`  // Other legible text fragments.
	Demographics   string   `json:"demographics,omitempty"`    // The apparent target demographic.
	Mood           string   `json:"mood,omitempty"`            // The emotional register of the creative.
	ColorScheme    string   `json:"color_scheme,omitempty"`    // A short description of the palette.
	CallToAction   string   `json:"call_to_action,omitempty"`  // The CTA, when present.
	Subjects       []string `json:"subjects,omitempty"`        // Prominent subjects (people, products, logos).
	Recommendation string   `json:"recommendation,omitempty"`  // A one-paragraph effectiveness note.
}

// GetExampleInsight returns a complete, well-formed insight used as a
// few-shot example in the analysis prompt. Providing one concrete example
// measurably improves the structural reliability of the model output.
func GetExampleInsight() *AdInsight {
	return &AdInsight{
		Brand:          "Acme Sparkling Water",
		Headline:       "Refreshment, Reinvented",
		OnScreenText:   []string{"Zero sugar", "Available in 6 flavors"},
		Demographics:   "Health-conscious adults, 25-40",
		Mood:           "Bright, energetic",
		ColorScheme:    "Cool blues and whites with citrus accents",
		CallToAction:   "Find yours in the chilled aisle",
		Subjects:       []string{"condensation-covered can", "sliced lime", "beach backdrop"},
		Recommendation: "Strong product focus and legible headline; the CTA is small relative to the canvas and could be emphasized.",
	}
}
