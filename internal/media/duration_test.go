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

package media_test

import (
	"testing"

	"github.com/adscope/ad-media-analysis/internal/media"
	"github.com/stretchr/testify/assert"
)

// TestFormatDuration pins the human-readable duration sentences the length
// report is built from. The strings are an external contract: pluralization
// is per clause, exact minute multiples drop the seconds clause, and there
// is no hour clause.
func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{2, "2 seconds"},
		{59, "59 seconds"},
		{60, "1 minute"},
		{61, "1 minute 1 second"},
		{62, "1 minute 2 seconds"},
		{120, "2 minutes"},
		{125, "2 minutes 5 seconds"},
		{3599, "59 minutes 59 seconds"},
		{3600, "60 minutes"},
		{7265, "121 minutes 5 seconds"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, media.FormatDuration(tc.seconds), "seconds %v", tc.seconds)
	}
}

// TestFormatDurationTruncates verifies fractional seconds truncate toward
// zero rather than round. 59.9 seconds is still under a minute.
func TestFormatDurationTruncates(t *testing.T) {
	assert.Equal(t, "59 seconds", media.FormatDuration(59.94))
	assert.Equal(t, "1 second", media.FormatDuration(1.999))
	assert.Equal(t, "1 minute", media.FormatDuration(60.5))
	assert.Equal(t, "0 seconds", media.FormatDuration(0.25))
}
