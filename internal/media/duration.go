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

package media

import "fmt"

// FormatDuration renders a seconds count as a human sentence. Fractional
// seconds are truncated toward zero, never rounded. Durations under a minute
// render in seconds; exact minute multiples render in minutes only; anything
// else renders as "{m} minute(s) {r} second(s)" with each clause pluralized
// independently. There is no hour clause: large durations stay in minutes.
func FormatDuration(seconds float64) string {
	total := int(seconds)

	if total < 60 {
		if total == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", total)
	}

	minutes := total / 60
	remaining := total % 60

	if remaining == 0 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}

	minuteText := fmt.Sprintf("%d minutes", minutes)
	if minutes == 1 {
		minuteText = "1 minute"
	}
	secondText := fmt.Sprintf("%d seconds", remaining)
	if remaining == 1 {
		secondText = "1 second"
	}
	return minuteText + " " + secondText
}
