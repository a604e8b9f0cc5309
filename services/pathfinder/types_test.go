// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pathfinder

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "already normal", title: "pizza", want: "pizza"},
		{name: "case folded", title: "Pizza", want: "pizza"},
		{name: "surrounding whitespace trimmed", title: "  Pizza \n", want: "pizza"},
		{name: "inner spaces become underscores", title: "New York City", want: "new_york_city"},
		{name: "mixed", title: " Ice Cream ", want: "ice_cream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeTitle(tt.title); got != tt.want {
				t.Errorf("normalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSameTitle(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "identical", a: "Pizza", b: "Pizza", want: true},
		{name: "case insensitive", a: "Pizza", b: "pizza", want: true},
		{name: "space vs underscore", a: "New York City", b: "new_york_city", want: true},
		{name: "different articles", a: "Pizza", b: "Chocolate", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameTitle(tt.a, tt.b); got != tt.want {
				t.Errorf("sameTitle(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeTargetReached.String() != "target_reached" {
		t.Errorf("OutcomeTargetReached.String() = %q", OutcomeTargetReached.String())
	}
	if OutcomeMaxIterations.String() != "max_iterations" {
		t.Errorf("OutcomeMaxIterations.String() = %q", OutcomeMaxIterations.String())
	}
	if Outcome(99).String() != "unknown" {
		t.Errorf("Outcome(99).String() = %q", Outcome(99).String())
	}
}
