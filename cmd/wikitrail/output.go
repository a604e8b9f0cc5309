// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/WikiTrail/services/pathfinder"
)

// Aleutian color palette - deep ocean teals and arctic waters
var (
	colorTealBright  = lipgloss.Color("#2CD7C7")
	colorTealPrimary = lipgloss.Color("#20B9B4")
	colorWarning     = lipgloss.Color("#F4D03F")
	colorMuted       = lipgloss.Color("#2C4A54")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorTealBright)
	styleStep    = lipgloss.NewStyle().Foreground(colorTealPrimary)
	styleArrow   = lipgloss.NewStyle().Foreground(colorMuted)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
)

// renderResult formats one exploration result for the terminal.
func renderResult(result *pathfinder.Result) string {
	var b strings.Builder

	switch result.Outcome {
	case pathfinder.OutcomeTargetReached:
		b.WriteString(styleTitle.Render("Target page reached!"))
	case pathfinder.OutcomeMaxIterations:
		b.WriteString(styleWarning.Render("Max iterations reached or target not found."))
	}
	b.WriteString("\n\n")

	arrow := styleArrow.Render(" -> ")
	steps := make([]string, len(result.Path))
	for i, page := range result.Path {
		steps[i] = styleStep.Render(page)
	}
	b.WriteString(strings.Join(steps, arrow))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%d iterations, %d pages, %d stalls, %d fallbacks",
		result.Iterations, len(result.Path), result.Stalls, result.Fallbacks)

	return b.String()
}
