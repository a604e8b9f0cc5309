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

import "strings"

// reservedPrefixes lists the non-content namespace prefixes removed from
// every edge set. Matched case-sensitively on the literal prefix. English
// and French forms; extend the table, not the matching logic.
var reservedPrefixes = []string{
	"Help:",
	"Aide:",
	"Template:",
	"Modèle:",
	"Wikipedia:",
	"Wikipédia:",
	"Category:",
	"Catégorie:",
	"Portal:",
	"Portail:",
	"File:",
	"Fichier:",
	"Talk:",
	"Discussion:",
}

// isReserved reports whether a title sits in a non-content namespace.
func isReserved(title string) bool {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(title, prefix) {
			return true
		}
	}
	return false
}

// filterReserved returns a new slice holding the content-namespace titles
// of links, preserving order. The input is never mutated.
func filterReserved(links []string) []string {
	filtered := make([]string, 0, len(links))
	for _, link := range links {
		if !isReserved(link) {
			filtered = append(filtered, link)
		}
	}
	return filtered
}
