/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"regexp"
	"time"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// parseYearFromArgs resolves the target year from an optional positional
// argument. With no argument, the current local year is used.
func parseYearFromArgs(args []string) (int, error) {
	switch len(args) {
	case 0:
		return time.Now().Year(), nil

	case 1:
		return parseYear(args[0])

	default:
		return 0, fmt.Errorf("Expected at most one year argument")
	}
}

func parseYear(ys string) (int, error) {
	if !yearPattern.MatchString(ys) {
		return 0, fmt.Errorf("Invalid year format: %q", ys)
	}

	date, err := time.Parse("2006", ys)
	if err != nil {
		return 0, fmt.Errorf("Parsing year %q: %w", ys, err)
	}
	return date.Year(), nil
}
