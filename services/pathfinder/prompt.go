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

import (
	"fmt"
	"strings"
)

// oracleSystemPrompt pins the oracle to its one job: pick a link.
const oracleSystemPrompt = "You are a Wikipedia navigation assistant. " +
	"Given the current page, a target page, a history of visited pages, " +
	"and a list of available link titles on the current page, choose " +
	"exactly one link title from the list that is most likely to lead " +
	"toward the target page. Respond with only the exact title of the " +
	"chosen link."

// RenderPrompt renders a NavigationContext into the oracle request text.
//
// The rendering is deterministic: identical contexts produce identical
// prompts, byte for byte. Candidates are listed one per line in their
// first-seen fetch order. No transport concerns live here.
func RenderPrompt(nc NavigationContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Current Wikipedia page: '%s'\n", nc.Current)
	fmt.Fprintf(&b, "Target Wikipedia page: '%s'\n", nc.Target)
	fmt.Fprintf(&b, "Visited pages so far: %s\n", strings.Join(nc.Visited, ", "))
	b.WriteString("Available links on the current page:\n")
	for _, link := range nc.Candidates {
		fmt.Fprintf(&b, "- %s\n", link)
	}
	b.WriteString("\nFrom the list above, please choose exactly one link (the title) " +
		"that is the best next step to reach the target page. " +
		"Respond with only the exact title.")

	return b.String()
}
